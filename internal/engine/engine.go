// Package engine drives batch classification and applies approved plans.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpmusenge/agentic-drive-organizer/internal/common"
	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
	"github.com/jpmusenge/agentic-drive-organizer/internal/rules"
)

// Driver iterates a file batch through a classifier, growing the working
// known-folders set as new folders are suggested.
type Driver struct {
	classifier Classifier
	snippets   SnippetProvider
	progress   ProgressFunc
	config     Config
}

// Config holds configuration options for the classification driver.
type Config struct {
	// SnippetLimit bounds the content preview passed to the classifier.
	SnippetLimit int
	// Retry wraps each classifier call; zero values use the retry defaults.
	Retry common.RetryOptions
}

// DefaultConfig returns the default driver configuration.
func DefaultConfig() Config {
	return Config{
		SnippetLimit: 500,
		Retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// New creates a driver with the default configuration.
func New(classifier Classifier) *Driver {
	return NewWithConfig(classifier, DefaultConfig())
}

// NewWithConfig creates a driver with custom configuration.
func NewWithConfig(classifier Classifier, config Config) *Driver {
	return &Driver{classifier: classifier, config: config}
}

// WithSnippets attaches an optional content-snippet provider.
func (d *Driver) WithSnippets(provider SnippetProvider) *Driver {
	d.snippets = provider
	return d
}

// WithProgress attaches an optional per-file progress callback.
func (d *Driver) WithProgress(fn ProgressFunc) *Driver {
	d.progress = fn
	return d
}

// ClassifyBatch classifies files in order, returning one result per input
// file. It works on a private copy of knownFolders: a folder suggested for an
// earlier file counts as known for every later file in the same batch, so
// batch order is load-bearing. Classifier failures are downgraded per file to
// the last-resort label; they never abort the batch.
func (d *Driver) ClassifyBatch(ctx context.Context, files []model.File, knownFolders []string) ([]model.ClassificationResult, error) {
	working := make([]string, len(knownFolders))
	copy(working, knownFolders)

	results := make([]model.ClassificationResult, 0, len(files))
	total := len(files)

	for i, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		snippet := d.fetchSnippet(ctx, file)

		result, err := d.classifyOne(ctx, file, working, snippet)
		if err != nil {
			slog.Warn("Classification failed, using last-resort label",
				"file_id", file.ID,
				"file_name", file.Name,
				"error", err)
			result = lastResortResult(file, working, err)
		}

		if result.IsNewFolder {
			working = appendFolder(working, result.SuggestedFolder)
		}

		results = append(results, result)
		if d.progress != nil {
			d.progress(i+1, total, result)
		}
	}

	return results, nil
}

func (d *Driver) classifyOne(ctx context.Context, file model.File, known []string, snippet string) (model.ClassificationResult, error) {
	var result model.ClassificationResult
	err := common.WithRetry(ctx, func() error {
		var classifyErr error
		result, classifyErr = d.classifier.Classify(ctx, file, known, snippet)
		if classifyErr != nil {
			return &common.RetryableError{Err: classifyErr, Retryable: common.IsRetryable(classifyErr)}
		}
		return nil
	}, d.config.Retry)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("%w: %v", common.ErrClassificationFailed, err)
	}
	return result, nil
}

func (d *Driver) fetchSnippet(ctx context.Context, file model.File) string {
	if d.snippets == nil {
		return ""
	}
	snippet, err := d.snippets.ContentSnippet(ctx, file, d.config.SnippetLimit)
	if err != nil {
		slog.Debug("Content snippet unavailable",
			"file_id", file.ID,
			"error", err)
		return ""
	}
	return snippet
}

// lastResortResult builds the conservative result a failed classification
// degrades to. The label is deduplicated against the working folder set like
// any other suggestion.
func lastResortResult(file model.File, known []string, cause error) model.ClassificationResult {
	folder, isNew := rules.ResolveFolder(rules.LastResortFolder, known)
	return model.ClassificationResult{
		FileID:          file.ID,
		FileName:        file.Name,
		SuggestedFolder: folder,
		IsNewFolder:     isNew,
		Confidence:      model.ConfidenceLow,
		Source:          model.DecisionFallback,
		Reasoning:       fmt.Sprintf("Classification failed: %v", cause),
	}
}

// appendFolder adds name to the working set unless an equal name (ignoring
// case) is already present.
func appendFolder(working []string, name string) []string {
	if _, isNew := rules.ResolveFolder(name, working); !isNew {
		return working
	}
	return append(working, name)
}
