package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jpmusenge/agentic-drive-organizer/internal/config"
	"github.com/jpmusenge/agentic-drive-organizer/internal/review"
	"github.com/jpmusenge/agentic-drive-organizer/internal/rules"
	"github.com/jpmusenge/agentic-drive-organizer/internal/storage"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage classification rules",
		Long: `View the built-in keyword rules and manage your own custom ones.

Custom rules are regular expressions matched against lowercased file names.
They are tried before the built-in rules during classification, and the
first matching rule wins.`,
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesDeleteCmd())

	return cmd
}

func rulesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List custom and built-in rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			custom, err := store.ListCustomRules(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list custom rules: %w", err)
			}

			if len(custom) == 0 {
				fmt.Fprintln(os.Stdout, review.FormatInfo("No custom rules. Add one with 'driveorg rules add'."))
			} else {
				var sb strings.Builder
				for _, r := range custom {
					fmt.Fprintf(&sb, "[%d] %-40s → %s\n", r.ID, r.Pattern, r.Folder)
				}
				fmt.Fprintln(os.Stdout, review.RenderBox("Custom Rules", strings.TrimRight(sb.String(), "\n")))
			}

			builtin := rules.DefaultRules()
			fmt.Fprintln(os.Stdout, review.FormatInfo(fmt.Sprintf("%d built-in rules. Run with --verbose to print them.", len(builtin))))
			if viper.GetBool("rules.verbose") {
				var sb strings.Builder
				for _, r := range builtin {
					fmt.Fprintf(&sb, "%-40s → %s\n", r.Pattern, r.Folder)
				}
				fmt.Fprintln(os.Stdout, review.RenderBox("Built-in Rules", strings.TrimRight(sb.String(), "\n")))
			}

			return nil
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Also print the built-in rules")
	_ = viper.BindPFlag("rules.verbose", cmd.Flags().Lookup("verbose"))

	return cmd
}

func rulesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <pattern> <folder>",
		Short: "Add a custom classification rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			priority := viper.GetInt("rules.priority")

			// Validate the pattern and folder the same way classification will.
			if _, err := rules.NewClassifier([]rules.Rule{{Pattern: args[0], Folder: args[1]}}); err != nil {
				return err
			}

			rule, err := store.AddCustomRule(cmd.Context(), args[0], args[1], priority)
			if err != nil {
				return fmt.Errorf("failed to add rule: %w", err)
			}

			slog.Info(review.FormatSuccess(fmt.Sprintf("Added rule [%d]: %s → %s", rule.ID, rule.Pattern, rule.Folder)))
			return nil
		},
	}

	cmd.Flags().Int("priority", 0, "Position among custom rules (0 = first)")
	_ = viper.BindPFlag("rules.priority", cmd.Flags().Lookup("priority"))

	return cmd
}

func rulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom rule by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule id %q", args[0])
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			deleted, err := store.DeleteCustomRule(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete rule: %w", err)
			}
			if !deleted {
				return fmt.Errorf("no rule with id %d", id)
			}

			slog.Info(review.FormatSuccess(fmt.Sprintf("Deleted rule [%d]", id)))
			return nil
		},
	}
}

func openStore(cmd *cobra.Command) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(viper.GetString("database.path")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}
