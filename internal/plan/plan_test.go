package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmusenge/agentic-drive-organizer/internal/common"
	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
)

func result(fileID, fileName, folder string, isNew bool) model.ClassificationResult {
	return model.ClassificationResult{
		FileID:          fileID,
		FileName:        fileName,
		SuggestedFolder: folder,
		IsNewFolder:     isNew,
		Confidence:      model.ConfidenceHigh,
		Source:          model.DecisionRule,
	}
}

// checkInvariant asserts that bucket keys equal the disjoint union of the new
// and existing folder sets and that no bucket is empty.
func checkInvariant(t *testing.T, p *OrganizationPlan) {
	t.Helper()

	folders := p.Folders()
	newSet := p.NewFolders()
	existingSet := p.ExistingFolders()

	assert.Len(t, folders, len(newSet)+len(existingSet), "new and existing sets must partition the bucket keys")

	for _, folder := range folders {
		inNew := contains(newSet, folder)
		inExisting := contains(existingSet, folder)
		assert.True(t, inNew != inExisting, "folder %q must be in exactly one set", folder)
		assert.NotEmpty(t, p.Bucket(folder), "bucket %q must not be empty", folder)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestAddResult(t *testing.T) {
	p := New()

	p.AddResult(result("f1", "essay.docx", "Essays", true))
	p.AddResult(result("f2", "essay2.docx", "Essays", true))
	p.AddResult(result("f3", "resume.pdf", "Resume", false))
	checkInvariant(t, p)

	assert.Equal(t, []string{"Essays", "Resume"}, p.Folders())
	assert.Len(t, p.Bucket("Essays"), 2)
	assert.Equal(t, []string{"Essays"}, p.NewFolders())
	assert.Equal(t, []string{"Resume"}, p.ExistingFolders())
	assert.True(t, p.IsNew("Essays"))
	assert.False(t, p.IsNew("Resume"))

	summary := p.Summary()
	assert.Equal(t, 3, summary.TotalFiles)
	assert.Equal(t, 1, summary.NewFolders)
	assert.Equal(t, 1, summary.ExistingFolders)
	assert.Equal(t, 2, summary.TotalFolders)
}

func TestAddResultKeepsEstablishedMembership(t *testing.T) {
	p := New()
	p.AddResult(result("f1", "a", "Essays", false))
	// A later result claiming the folder is new must not flip the set.
	p.AddResult(result("f2", "b", "Essays", true))
	checkInvariant(t, p)

	assert.False(t, p.IsNew("Essays"))
	assert.Empty(t, p.NewFolders())
}

func TestRenameFolder(t *testing.T) {
	t.Run("renames bucket and rewrites results", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "Essays", true))
		p.AddResult(result("f2", "b", "Resume", false))
		p.AddResult(result("f3", "c", "Essays", true))

		require.NoError(t, p.RenameFolder("Essays", "School Essays"))
		checkInvariant(t, p)

		// Insertion order slot is preserved.
		assert.Equal(t, []string{"School Essays", "Resume"}, p.Folders())
		assert.True(t, p.IsNew("School Essays"))

		for _, r := range p.Bucket("School Essays") {
			assert.Equal(t, "School Essays", r.SuggestedFolder)
		}
	})

	t.Run("existing folder keeps existing membership", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "Resume", false))

		require.NoError(t, p.RenameFolder("Resume", "Resumes"))
		checkInvariant(t, p)
		assert.False(t, p.IsNew("Resumes"))
		assert.Equal(t, []string{"Resumes"}, p.ExistingFolders())
	})

	t.Run("unknown folder", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "Essays", true))

		err := p.RenameFolder("Photos", "Pictures")
		assert.ErrorIs(t, err, common.ErrFolderNotFound)
		checkInvariant(t, p)
	})

	t.Run("rename onto existing bucket rejected", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "Essays", true))
		p.AddResult(result("f2", "b", "Resume", false))

		err := p.RenameFolder("Essays", "Resume")
		assert.ErrorIs(t, err, common.ErrFolderConflict)
		checkInvariant(t, p)

		// Plan unchanged.
		assert.Len(t, p.Bucket("Essays"), 1)
		assert.Len(t, p.Bucket("Resume"), 1)
	})

	t.Run("same name is a no-op", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "Essays", true))

		require.NoError(t, p.RenameFolder("Essays", "Essays"))
		checkInvariant(t, p)
		assert.Len(t, p.Bucket("Essays"), 1)
	})
}

func TestRemoveFile(t *testing.T) {
	p := New()
	p.AddResult(result("f1", "a", "Essays", true))
	p.AddResult(result("f2", "b", "Essays", true))
	p.AddResult(result("f3", "c", "Resume", false))

	assert.True(t, p.RemoveFile("f1"))
	checkInvariant(t, p)
	assert.Len(t, p.Bucket("Essays"), 1)

	// Removing the last file drops the bucket and its set membership.
	assert.True(t, p.RemoveFile("f2"))
	checkInvariant(t, p)
	assert.Equal(t, []string{"Resume"}, p.Folders())
	assert.Empty(t, p.NewFolders())

	// Idempotent: a second removal reports false and changes nothing.
	assert.False(t, p.RemoveFile("f2"))
	checkInvariant(t, p)

	assert.True(t, p.RemoveFile("f3"))
	assert.True(t, p.Empty())
	checkInvariant(t, p)
}

func TestRemoveFileEmptiesExistingFolder(t *testing.T) {
	p := New()
	p.AddResult(result("f1", "a", "Resume", false))

	assert.True(t, p.RemoveFile("f1"))
	checkInvariant(t, p)
	assert.Empty(t, p.ExistingFolders())
	assert.True(t, p.Empty())
}

func TestMove(t *testing.T) {
	t.Run("moves between buckets and drops emptied source", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "A", true))
		p.AddResult(result("f2", "b", "B", false))

		require.NoError(t, p.Move("f1", "B"))
		checkInvariant(t, p)

		assert.Equal(t, []string{"B"}, p.Folders())
		bucket := p.Bucket("B")
		require.Len(t, bucket, 2)
		assert.Equal(t, "f2", bucket[0].FileID)
		assert.Equal(t, "f1", bucket[1].FileID)
		assert.Equal(t, "B", bucket[1].SuggestedFolder)
		// "A" is gone from every set.
		assert.Empty(t, p.NewFolders())
	})

	t.Run("move to a brand new folder", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "A", false))
		p.AddResult(result("f2", "b", "A", false))

		require.NoError(t, p.Move("f1", "C"))
		checkInvariant(t, p)

		assert.True(t, p.IsNew("C"))
		require.Len(t, p.Bucket("C"), 1)
		assert.True(t, p.Bucket("C")[0].IsNewFolder)
	})

	t.Run("moving the only file back recomputes newness", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "A", false))

		// "A" is emptied by the removal half of the move, so the destination
		// is no longer a bucket key and counts as new again.
		require.NoError(t, p.Move("f1", "A"))
		checkInvariant(t, p)
		assert.True(t, p.IsNew("A"))
	})

	t.Run("unknown file", func(t *testing.T) {
		p := New()
		p.AddResult(result("f1", "a", "A", true))

		err := p.Move("nope", "B")
		assert.ErrorIs(t, err, common.ErrFileNotFound)
		checkInvariant(t, p)
	})
}

func TestFilesFlattensInStableOrder(t *testing.T) {
	p := New()
	p.AddResult(result("f1", "a", "B", true))
	p.AddResult(result("f2", "b", "A", true))
	p.AddResult(result("f3", "c", "B", true))

	files := p.Files()
	require.Len(t, files, 3)
	assert.Equal(t, []string{"f1", "f3", "f2"}, []string{files[0].FileID, files[1].FileID, files[2].FileID})
}

func TestBucketReturnsCopy(t *testing.T) {
	p := New()
	p.AddResult(result("f1", "a", "A", true))

	bucket := p.Bucket("A")
	bucket[0].SuggestedFolder = "mutated"

	assert.Equal(t, "A", p.Bucket("A")[0].SuggestedFolder)
}
