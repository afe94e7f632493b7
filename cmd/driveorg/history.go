package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jpmusenge/agentic-drive-organizer/internal/review"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past organization runs",
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "n", 10, "Number of runs to show")
	_ = viper.BindPFlag("history.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cmd.Context(), viper.GetInt("history.limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, review.FormatInfo("No runs yet. Start with 'driveorg organize'."))
		return nil
	}

	var sb strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&sb, "[%d] %s  files: %d  moved: %d  new folders: %d  errors: %d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.TotalFiles, r.FilesMoved, r.FoldersCreated, r.Errors)
	}
	fmt.Fprintln(os.Stdout, review.RenderBox("Organization Runs", strings.TrimRight(sb.String(), "\n")))

	return nil
}
