package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jpmusenge/agentic-drive-organizer/internal/config"
	"github.com/jpmusenge/agentic-drive-organizer/internal/drive"
	"github.com/jpmusenge/agentic-drive-organizer/internal/engine"
	"github.com/jpmusenge/agentic-drive-organizer/internal/llm"
	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
	"github.com/jpmusenge/agentic-drive-organizer/internal/plan"
	"github.com/jpmusenge/agentic-drive-organizer/internal/review"
	"github.com/jpmusenge/agentic-drive-organizer/internal/rules"
	"github.com/jpmusenge/agentic-drive-organizer/internal/storage"
)

func organizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Classify loose files and move them into folders",
		Long: `Scan the root of your Google Drive for loose files, classify each one
into a destination folder, and present the resulting plan for review.

Nothing is moved until you approve the plan. Use --dry-run to see the
plan without the review step, and --ai to classify with Gemini instead
of the built-in keyword rules.`,
		RunE: runOrganize,
	}

	// Flags
	cmd.Flags().Bool("ai", false, "Classify with Gemini instead of keyword rules")
	cmd.Flags().Bool("dry-run", false, "Show the plan without reviewing or moving anything")

	// Bind to viper
	_ = viper.BindPFlag("organize.ai", cmd.Flags().Lookup("ai"))
	_ = viper.BindPFlag("organize.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runOrganize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	useAI := viper.GetBool("organize.ai")
	dryRun := viper.GetBool("organize.dry_run")

	store, err := storage.NewSQLiteStorage(config.ExpandPath(viper.GetString("database.path")))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	svc, err := drive.NewService(ctx, drive.AuthConfig{
		CredentialsFile: config.ExpandPath(viper.GetString("drive.credentials")),
		TokenFile:       config.ExpandPath(viper.GetString("drive.token")),
	})
	if err != nil {
		return err
	}
	client := drive.NewClient(svc)

	slog.Info(review.FormatInfo("Scanning your Drive root..."))

	folders, err := client.ListRootFolders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list folders: %w", err)
	}
	files, err := client.ListLooseFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list loose files: %w", err)
	}
	if len(files) == 0 {
		slog.Info(review.FormatSuccess("No loose files found. Your Drive root is already tidy!"))
		return nil
	}

	slog.Info("Found loose files", "files", len(files), "folders", len(folders))

	classifier, cleanup, err := buildClassifier(cmd, store, useAI)
	if err != nil {
		return err
	}
	defer cleanup()

	knownFolders := make([]string, 0, len(folders))
	for _, f := range folders {
		knownFolders = append(knownFolders, f.Name)
	}

	bar := classifyBar(len(files))
	driver := engine.New(classifier).
		WithSnippets(client).
		WithProgress(func(_ int, _ int, _ model.ClassificationResult) {
			_ = bar.Add(1)
		})

	results, err := driver.ClassifyBatch(ctx, files, knownFolders)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stdout)

	p := plan.New()
	for _, r := range results {
		p.AddResult(r)
	}

	if dryRun {
		fmt.Fprintln(os.Stdout, review.RenderPlan(p))
		slog.Info(review.FormatInfo("Dry run: nothing was moved."))
		return nil
	}

	reviewer := review.NewReviewer(nil, nil)
	approved, err := reviewer.Run(ctx, p)
	if err != nil {
		return err
	}
	if approved == nil {
		slog.Info(review.FormatWarning("Plan cancelled. Nothing was moved."))
		return nil
	}

	folderIDs := make(map[string]string, len(folders))
	for _, f := range folders {
		folderIDs[f.Name] = f.ID
	}

	executor := engine.NewExecutor(client, os.Stdout)
	execResult, err := executor.Execute(ctx, approved, folderIDs)
	if err != nil {
		return err
	}

	runID, err := store.RecordRun(ctx, approved.Files(), execResult.FoldersCreated, execResult.FilesMoved, execResult.Errors)
	if err != nil {
		slog.Warn("failed to record run history", "error", err)
	} else {
		slog.Info("Run recorded", "run_id", runID)
	}

	if execResult.Errors > 0 {
		slog.Warn(review.FormatWarning(fmt.Sprintf("Finished with %d errors. See the log for details.", execResult.Errors)))
	} else {
		slog.Info(review.FormatSuccess("All done! Your Drive root is tidy."))
	}
	return nil
}

// buildClassifier picks the rule table or Gemini depending on --ai, layering
// any stored custom rules on top of the built-in ones.
func buildClassifier(cmd *cobra.Command, store *storage.SQLiteStorage, useAI bool) (engine.Classifier, func(), error) {
	if useAI {
		apiKey := viper.GetString("ai.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		c, err := llm.NewClassifier(llm.Config{
			Provider:  "gemini",
			APIKey:    apiKey,
			Model:     viper.GetString("ai.model"),
			RateLimit: viper.GetInt("ai.rate_limit"),
		}, slog.Default())
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}

	classifier := rules.NewDefaultClassifier()

	custom, err := store.ListCustomRules(cmd.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load custom rules: %w", err)
	}

	// Custom rules go ahead of the built-in table. Priority is the position
	// within the custom prefix; anything out of range appends to it.
	added := 0
	for _, r := range custom {
		idx := r.Priority
		if idx < 0 || idx > added {
			idx = added
		}
		if err := classifier.AddRule(r.Pattern, r.Folder, idx); err != nil {
			slog.Warn("skipping invalid custom rule", "pattern", r.Pattern, "error", err)
			continue
		}
		added++
	}

	return classifier, func() {}, nil
}

func classifyBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionSetDescription("Classifying files..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
