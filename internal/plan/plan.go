// Package plan maintains the mutable organization plan an operator reviews
// before any file is touched in the remote store.
package plan

import (
	"sort"

	"github.com/jpmusenge/agentic-drive-organizer/internal/common"
	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
)

// OrganizationPlan groups classification results into folder buckets.
//
// Invariant: the set of bucket keys equals the disjoint union of the new and
// existing folder sets, and every bucket is non-empty. Every mutation
// restores the invariant before returning; failed mutations leave the plan
// untouched.
type OrganizationPlan struct {
	buckets         map[string][]model.ClassificationResult
	newFolders      map[string]struct{}
	existingFolders map[string]struct{}
	order           []string // folder keys in first-insertion order
}

// Summary holds derived counts over the plan. All values are computed from
// the buckets on demand so they can never drift from the plan's contents.
type Summary struct {
	TotalFiles      int
	NewFolders      int
	ExistingFolders int
	TotalFolders    int
}

// New creates an empty plan.
func New() *OrganizationPlan {
	return &OrganizationPlan{
		buckets:         make(map[string][]model.ClassificationResult),
		newFolders:      make(map[string]struct{}),
		existingFolders: make(map[string]struct{}),
	}
}

// AddResult appends a result to the bucket for its suggested folder, creating
// the bucket if absent. For a new bucket the folder joins the new or existing
// set per the result's IsNewFolder flag; an established bucket keeps its
// membership regardless of the incoming flag.
func (p *OrganizationPlan) AddResult(result model.ClassificationResult) {
	folder := result.SuggestedFolder

	if _, ok := p.buckets[folder]; !ok {
		p.order = append(p.order, folder)
		if result.IsNewFolder {
			p.newFolders[folder] = struct{}{}
		} else {
			p.existingFolders[folder] = struct{}{}
		}
	}

	p.buckets[folder] = append(p.buckets[folder], result)
}

// RenameFolder re-keys old's bucket to newName, rewriting every contained
// result's SuggestedFolder. Returns ErrFolderNotFound if old is not a bucket
// key and ErrFolderConflict if newName already is one; the plan is unchanged
// in both cases.
func (p *OrganizationPlan) RenameFolder(old, newName string) error {
	files, ok := p.buckets[old]
	if !ok {
		return common.ErrFolderNotFound
	}
	if _, exists := p.buckets[newName]; exists && newName != old {
		return common.ErrFolderConflict
	}
	if newName == old {
		return nil
	}

	delete(p.buckets, old)
	for i := range files {
		files[i].SuggestedFolder = newName
	}
	p.buckets[newName] = files

	for i, name := range p.order {
		if name == old {
			p.order[i] = newName
			break
		}
	}

	if _, ok := p.newFolders[old]; ok {
		delete(p.newFolders, old)
		p.newFolders[newName] = struct{}{}
	} else {
		delete(p.existingFolders, old)
		p.existingFolders[newName] = struct{}{}
	}

	return nil
}

// RemoveFile removes the first result whose FileID matches, deleting its
// bucket (and the folder's set membership) if the bucket becomes empty.
// Reports whether a result was removed.
func (p *OrganizationPlan) RemoveFile(fileID string) bool {
	_, ok := p.takeFile(fileID)
	return ok
}

// takeFile removes and returns the result for fileID, scanning buckets in
// insertion order.
func (p *OrganizationPlan) takeFile(fileID string) (model.ClassificationResult, bool) {
	for _, folder := range p.order {
		files := p.buckets[folder]
		for i, result := range files {
			if result.FileID != fileID {
				continue
			}

			files = append(files[:i], files[i+1:]...)
			if len(files) == 0 {
				p.dropFolder(folder)
			} else {
				p.buckets[folder] = files
			}
			return result, true
		}
	}
	return model.ClassificationResult{}, false
}

func (p *OrganizationPlan) dropFolder(folder string) {
	delete(p.buckets, folder)
	delete(p.newFolders, folder)
	delete(p.existingFolders, folder)
	for i, name := range p.order {
		if name == folder {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Move re-files a result under destination, composed as remove followed by
// add. IsNewFolder is recomputed against the plan's folder keys after the
// removal: true iff destination is not currently a bucket key. Returns
// ErrFileNotFound if no result matches fileID.
func (p *OrganizationPlan) Move(fileID, destination string) error {
	result, ok := p.takeFile(fileID)
	if !ok {
		return common.ErrFileNotFound
	}

	_, isKey := p.buckets[destination]
	result.SuggestedFolder = destination
	result.IsNewFolder = !isKey
	p.AddResult(result)
	return nil
}

// Summary returns derived counts over the plan.
func (p *OrganizationPlan) Summary() Summary {
	total := 0
	for _, files := range p.buckets {
		total += len(files)
	}
	return Summary{
		TotalFiles:      total,
		NewFolders:      len(p.newFolders),
		ExistingFolders: len(p.existingFolders),
		TotalFolders:    len(p.buckets),
	}
}

// Folders returns the bucket keys in first-insertion order.
func (p *OrganizationPlan) Folders() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Bucket returns the ordered results filed under folder.
func (p *OrganizationPlan) Bucket(folder string) []model.ClassificationResult {
	files := p.buckets[folder]
	out := make([]model.ClassificationResult, len(files))
	copy(out, files)
	return out
}

// Files returns every result in the plan, flattened in a stable order:
// folder insertion order, then within-bucket classification order.
func (p *OrganizationPlan) Files() []model.ClassificationResult {
	var out []model.ClassificationResult
	for _, folder := range p.order {
		out = append(out, p.buckets[folder]...)
	}
	return out
}

// NewFolders returns the sorted names of folders that must be created.
func (p *OrganizationPlan) NewFolders() []string {
	return sortedKeys(p.newFolders)
}

// ExistingFolders returns the sorted names of folders that already exist.
func (p *OrganizationPlan) ExistingFolders() []string {
	return sortedKeys(p.existingFolders)
}

// IsNew reports whether folder is in the plan's new-folder set.
func (p *OrganizationPlan) IsNew(folder string) bool {
	_, ok := p.newFolders[folder]
	return ok
}

// Empty reports whether the plan holds no files.
func (p *OrganizationPlan) Empty() bool {
	return len(p.buckets) == 0
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
