package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
	"github.com/jpmusenge/agentic-drive-organizer/internal/plan"
)

// mockFolderService records calls and fails on demand.
type mockFolderService struct {
	createErr map[string]error
	moveErr   map[string]error
	moves     map[string]string // fileID -> folderID
	created   []string
	nextID    int
}

func newMockFolderService() *mockFolderService {
	return &mockFolderService{
		createErr: make(map[string]error),
		moveErr:   make(map[string]error),
		moves:     make(map[string]string),
	}
}

func (m *mockFolderService) CreateFolder(_ context.Context, name string) (string, error) {
	if err := m.createErr[name]; err != nil {
		return "", err
	}
	m.nextID++
	m.created = append(m.created, name)
	return fmt.Sprintf("folder-%d", m.nextID), nil
}

func (m *mockFolderService) MoveFile(_ context.Context, fileID, folderID string) error {
	if err := m.moveErr[fileID]; err != nil {
		return err
	}
	m.moves[fileID] = folderID
	return nil
}

func buildPlan(results ...model.ClassificationResult) *plan.OrganizationPlan {
	p := plan.New()
	for _, r := range results {
		p.AddResult(r)
	}
	return p
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new folders and moves files", func(t *testing.T) {
		svc := newMockFolderService()
		p := buildPlan(
			model.ClassificationResult{FileID: "f1", FileName: "a", SuggestedFolder: "Essays", IsNewFolder: true},
			model.ClassificationResult{FileID: "f2", FileName: "b", SuggestedFolder: "Essays", IsNewFolder: true},
			model.ClassificationResult{FileID: "f3", FileName: "c", SuggestedFolder: "Resume", IsNewFolder: false},
		)

		var buf bytes.Buffer
		result, err := NewExecutor(svc, &buf).Execute(ctx, p, map[string]string{"Resume": "existing-1"})
		require.NoError(t, err)

		assert.Equal(t, 1, result.FoldersCreated)
		assert.Equal(t, 3, result.FilesMoved)
		assert.Equal(t, 0, result.Errors)

		assert.Equal(t, []string{"Essays"}, svc.created)
		assert.Equal(t, svc.moves["f1"], svc.moves["f2"])
		assert.Equal(t, "existing-1", svc.moves["f3"])
	})

	t.Run("folder creation failure fails the whole bucket", func(t *testing.T) {
		svc := newMockFolderService()
		svc.createErr["Essays"] = errors.New("quota exceeded")

		p := buildPlan(
			model.ClassificationResult{FileID: "f1", FileName: "a", SuggestedFolder: "Essays", IsNewFolder: true},
			model.ClassificationResult{FileID: "f2", FileName: "b", SuggestedFolder: "Essays", IsNewFolder: true},
			model.ClassificationResult{FileID: "f3", FileName: "c", SuggestedFolder: "Resume", IsNewFolder: false},
		)

		result, err := NewExecutor(svc, nil).Execute(ctx, p, map[string]string{"Resume": "existing-1"})
		require.NoError(t, err)

		// One error for the folder, one per stranded file.
		assert.Equal(t, 0, result.FoldersCreated)
		assert.Equal(t, 1, result.FilesMoved)
		assert.Equal(t, 3, result.Errors)
		assert.NotContains(t, svc.moves, "f1")
		assert.Equal(t, "existing-1", svc.moves["f3"])
	})

	t.Run("per-file move failures are counted and skipped", func(t *testing.T) {
		svc := newMockFolderService()
		svc.moveErr["f2"] = errors.New("permission denied")

		p := buildPlan(
			model.ClassificationResult{FileID: "f1", FileName: "a", SuggestedFolder: "Essays", IsNewFolder: true},
			model.ClassificationResult{FileID: "f2", FileName: "b", SuggestedFolder: "Essays", IsNewFolder: true},
			model.ClassificationResult{FileID: "f3", FileName: "c", SuggestedFolder: "Essays", IsNewFolder: true},
		)

		result, err := NewExecutor(svc, nil).Execute(ctx, p, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.FoldersCreated)
		assert.Equal(t, 2, result.FilesMoved)
		assert.Equal(t, 1, result.Errors)
	})

	t.Run("missing existing folder id is an error not a silent drop", func(t *testing.T) {
		svc := newMockFolderService()
		p := buildPlan(
			model.ClassificationResult{FileID: "f1", FileName: "a", SuggestedFolder: "Resume", IsNewFolder: false},
		)

		result, err := NewExecutor(svc, nil).Execute(ctx, p, nil)
		require.NoError(t, err)

		assert.Equal(t, 0, result.FilesMoved)
		assert.Equal(t, 1, result.Errors)
	})

	t.Run("caller's id map is not mutated", func(t *testing.T) {
		svc := newMockFolderService()
		p := buildPlan(
			model.ClassificationResult{FileID: "f1", FileName: "a", SuggestedFolder: "Essays", IsNewFolder: true},
		)

		ids := map[string]string{"Resume": "existing-1"}
		_, err := NewExecutor(svc, nil).Execute(ctx, p, ids)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"Resume": "existing-1"}, ids)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := newMockFolderService()
		p := buildPlan(
			model.ClassificationResult{FileID: "f1", FileName: "a", SuggestedFolder: "Essays", IsNewFolder: true},
		)

		_, err := NewExecutor(svc, nil).Execute(cancelCtx, p, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, svc.created)
	})

	t.Run("empty plan is a no-op", func(t *testing.T) {
		svc := newMockFolderService()
		result, err := NewExecutor(svc, nil).Execute(ctx, plan.New(), nil)
		require.NoError(t, err)
		assert.Equal(t, ExecutionResult{}, result)
	})
}
