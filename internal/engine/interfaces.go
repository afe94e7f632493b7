package engine

import (
	"context"

	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
)

// Classifier is the contract shared by the rule table and the AI-backed
// implementation: map a file (plus an optional content snippet) to a folder
// suggestion given the folder names known so far.
type Classifier interface {
	Classify(ctx context.Context, file model.File, knownFolders []string, snippet string) (model.ClassificationResult, error)
}

// SnippetProvider supplies a bounded plain-text preview of a file's content.
// Implementations may fail or return empty; the driver tolerates both.
type SnippetProvider interface {
	ContentSnippet(ctx context.Context, file model.File, maxChars int) (string, error)
}

// FolderService is the thin boundary the executor drives: create a folder,
// re-parent a file under one.
type FolderService interface {
	CreateFolder(ctx context.Context, name string) (string, error)
	MoveFile(ctx context.Context, fileID, folderID string) error
}

// ProgressFunc is invoked after each file is classified.
type ProgressFunc func(completed, total int, result model.ClassificationResult)
