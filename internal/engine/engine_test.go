package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmusenge/agentic-drive-organizer/internal/common"
	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
	"github.com/jpmusenge/agentic-drive-organizer/internal/rules"
)

// stubClassifier returns canned results keyed by file ID and records the
// known-folders slice it saw for each call.
type stubClassifier struct {
	results map[string]model.ClassificationResult
	errs    map[string]error
	seen    [][]string
}

func (s *stubClassifier) Classify(_ context.Context, file model.File, knownFolders []string, _ string) (model.ClassificationResult, error) {
	known := make([]string, len(knownFolders))
	copy(known, knownFolders)
	s.seen = append(s.seen, known)

	if err, ok := s.errs[file.ID]; ok {
		return model.ClassificationResult{}, err
	}
	return s.results[file.ID], nil
}

type stubSnippets struct {
	snippets map[string]string
	err      error
}

func (s *stubSnippets) ContentSnippet(_ context.Context, file model.File, _ int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.snippets[file.ID], nil
}

// fastRetry keeps failure-path tests from sleeping through real backoff.
func fastRetry() Config {
	cfg := DefaultConfig()
	cfg.Retry = common.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}
	return cfg
}

func TestClassifyBatchPreservesOrder(t *testing.T) {
	ctx := context.Background()

	files := []model.File{
		{ID: "f1", Name: "resume.pdf"},
		{ID: "f2", Name: "essay.docx"},
		{ID: "f3", Name: "photo.png"},
	}
	classifier := &stubClassifier{results: map[string]model.ClassificationResult{
		"f1": {FileID: "f1", SuggestedFolder: "Resume", IsNewFolder: true},
		"f2": {FileID: "f2", SuggestedFolder: "Essays", IsNewFolder: true},
		"f3": {FileID: "f3", SuggestedFolder: "Photos", IsNewFolder: true},
	}}

	results, err := New(classifier).ClassifyBatch(ctx, files, nil)
	require.NoError(t, err)

	require.Len(t, results, 3)
	for i, file := range files {
		assert.Equal(t, file.ID, results[i].FileID)
	}
}

func TestClassifyBatchGrowsWorkingFolderSet(t *testing.T) {
	ctx := context.Background()

	files := []model.File{
		{ID: "f1", Name: "a"},
		{ID: "f2", Name: "b"},
		{ID: "f3", Name: "c"},
	}
	classifier := &stubClassifier{results: map[string]model.ClassificationResult{
		"f1": {FileID: "f1", SuggestedFolder: "Essays", IsNewFolder: true},
		"f2": {FileID: "f2", SuggestedFolder: "Essays", IsNewFolder: false},
		"f3": {FileID: "f3", SuggestedFolder: "Photos", IsNewFolder: true},
	}}

	_, err := New(classifier).ClassifyBatch(ctx, files, []string{"Resume"})
	require.NoError(t, err)

	require.Len(t, classifier.seen, 3)
	assert.Equal(t, []string{"Resume"}, classifier.seen[0])
	// A folder suggested for an earlier file is known to every later one.
	assert.Equal(t, []string{"Resume", "Essays"}, classifier.seen[1])
	assert.Equal(t, []string{"Resume", "Essays"}, classifier.seen[2])
}

func TestClassifyBatchDoesNotMutateCallerSlice(t *testing.T) {
	ctx := context.Background()

	known := make([]string, 1, 4)
	known[0] = "Resume"

	classifier := &stubClassifier{results: map[string]model.ClassificationResult{
		"f1": {FileID: "f1", SuggestedFolder: "Essays", IsNewFolder: true},
	}}

	_, err := New(classifier).ClassifyBatch(ctx, []model.File{{ID: "f1", Name: "a"}}, known)
	require.NoError(t, err)

	assert.Equal(t, []string{"Resume"}, known)
	assert.Equal(t, 1, len(known))
}

func TestClassifyBatchDegradesFailuresToLastResort(t *testing.T) {
	ctx := context.Background()

	files := []model.File{
		{ID: "f1", Name: "a"},
		{ID: "f2", Name: "b"},
	}
	classifier := &stubClassifier{
		results: map[string]model.ClassificationResult{
			"f2": {FileID: "f2", SuggestedFolder: "Essays", IsNewFolder: true},
		},
		errs: map[string]error{
			"f1": errors.New("model exploded"),
		},
	}

	results, err := NewWithConfig(classifier, fastRetry()).ClassifyBatch(ctx, files, nil)
	require.NoError(t, err, "a per-file failure must not abort the batch")

	require.Len(t, results, 2)
	assert.Equal(t, rules.LastResortFolder, results[0].SuggestedFolder)
	assert.True(t, results[0].IsNewFolder)
	assert.Equal(t, model.ConfidenceLow, results[0].Confidence)
	assert.Equal(t, model.DecisionFallback, results[0].Source)
	assert.Equal(t, "Essays", results[1].SuggestedFolder)
}

func TestClassifyBatchLastResortReusesExistingFolder(t *testing.T) {
	ctx := context.Background()

	classifier := &stubClassifier{
		errs: map[string]error{"f1": errors.New("nope")},
	}

	results, err := NewWithConfig(classifier, fastRetry()).
		ClassifyBatch(ctx, []model.File{{ID: "f1", Name: "a"}}, []string{"to sort"})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "to sort", results[0].SuggestedFolder)
	assert.False(t, results[0].IsNewFolder)
}

func TestClassifyBatchPassesSnippets(t *testing.T) {
	ctx := context.Background()

	var gotSnippet string
	classifier := classifierFunc(func(_ context.Context, file model.File, _ []string, snippet string) (model.ClassificationResult, error) {
		gotSnippet = snippet
		return model.ClassificationResult{FileID: file.ID, SuggestedFolder: "Essays", IsNewFolder: true}, nil
	})

	driver := New(classifier).WithSnippets(&stubSnippets{snippets: map[string]string{"f1": "once upon a time"}})
	_, err := driver.ClassifyBatch(ctx, []model.File{{ID: "f1", Name: "a"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "once upon a time", gotSnippet)
}

func TestClassifyBatchToleratesSnippetErrors(t *testing.T) {
	ctx := context.Background()

	classifier := &stubClassifier{results: map[string]model.ClassificationResult{
		"f1": {FileID: "f1", SuggestedFolder: "Essays", IsNewFolder: true},
	}}
	driver := New(classifier).WithSnippets(&stubSnippets{err: errors.New("export denied")})

	results, err := driver.ClassifyBatch(ctx, []model.File{{ID: "f1", Name: "a"}}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Essays", results[0].SuggestedFolder)
}

func TestClassifyBatchProgressCallback(t *testing.T) {
	ctx := context.Background()

	files := []model.File{
		{ID: "f1", Name: "a"},
		{ID: "f2", Name: "b"},
	}
	classifier := &stubClassifier{results: map[string]model.ClassificationResult{
		"f1": {FileID: "f1", SuggestedFolder: "A", IsNewFolder: true},
		"f2": {FileID: "f2", SuggestedFolder: "B", IsNewFolder: true},
	}}

	var calls []string
	driver := New(classifier).WithProgress(func(completed, total int, result model.ClassificationResult) {
		calls = append(calls, fmt.Sprintf("%d/%d:%s", completed, total, result.FileID))
	})

	_, err := driver.ClassifyBatch(ctx, files, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1/2:f1", "2/2:f2"}, calls)
}

func TestClassifyBatchHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	classifier := &stubClassifier{}
	_, err := New(classifier).ClassifyBatch(ctx, []model.File{{ID: "f1", Name: "a"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, classifier.seen)
}

// classifierFunc adapts a function to the Classifier interface.
type classifierFunc func(ctx context.Context, file model.File, knownFolders []string, snippet string) (model.ClassificationResult, error)

func (f classifierFunc) Classify(ctx context.Context, file model.File, knownFolders []string, snippet string) (model.ClassificationResult, error) {
	return f(ctx, file, knownFolders, snippet)
}
