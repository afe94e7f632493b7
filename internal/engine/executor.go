package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jpmusenge/agentic-drive-organizer/internal/plan"
	"github.com/schollz/progressbar/v3"
)

// Executor applies an approved plan against the remote store.
type Executor struct {
	service FolderService
	writer  io.Writer
}

// ExecutionResult tallies what happened while applying a plan.
type ExecutionResult struct {
	FoldersCreated int
	FilesMoved     int
	Errors         int
}

// NewExecutor creates an executor that reports progress to writer.
func NewExecutor(service FolderService, writer io.Writer) *Executor {
	return &Executor{service: service, writer: writer}
}

// Execute creates every folder in the plan's new-folder set, then re-parents
// each file under its bucket's folder. folderIDs maps already-existing folder
// names to their storage IDs and is extended with newly created folders.
// Individual failures are counted and logged; execution always continues
// through the remaining items.
func (e *Executor) Execute(ctx context.Context, p *plan.OrganizationPlan, folderIDs map[string]string) (ExecutionResult, error) {
	var result ExecutionResult

	ids := make(map[string]string, len(folderIDs))
	for name, id := range folderIDs {
		ids[name] = id
	}

	for _, name := range p.NewFolders() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		id, err := e.service.CreateFolder(ctx, name)
		if err != nil {
			slog.Error("Failed to create folder", "folder", name, "error", err)
			result.Errors++
			continue
		}
		ids[name] = id
		result.FoldersCreated++
	}

	bar := e.newProgressBar(p.Summary().TotalFiles)

	for _, folder := range p.Folders() {
		folderID, ok := ids[folder]
		if !ok {
			// Folder creation failed above, or the caller's ID map is
			// missing an existing folder. Every file in the bucket is an
			// error, never a silent drop.
			slog.Warn("No folder ID, skipping bucket", "folder", folder)
			result.Errors += len(p.Bucket(folder))
			e.advance(bar, len(p.Bucket(folder)))
			continue
		}

		for _, file := range p.Bucket(folder) {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}

			if err := e.service.MoveFile(ctx, file.FileID, folderID); err != nil {
				slog.Error("Failed to move file",
					"file_id", file.FileID,
					"file_name", file.FileName,
					"folder", folder,
					"error", err)
				result.Errors++
			} else {
				result.FilesMoved++
			}
			e.advance(bar, 1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
		_, _ = fmt.Fprintln(e.writer)
	}

	slog.Info("Plan execution finished",
		"folders_created", result.FoldersCreated,
		"files_moved", result.FilesMoved,
		"errors", result.Errors)

	return result, nil
}

func (e *Executor) newProgressBar(total int) *progressbar.ProgressBar {
	if e.writer == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(e.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Moving files...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (e *Executor) advance(bar *progressbar.ProgressBar, n int) {
	if bar == nil {
		return
	}
	if err := bar.Add(n); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}
