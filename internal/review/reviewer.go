package review

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jpmusenge/agentic-drive-organizer/internal/common"
	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
	"github.com/jpmusenge/agentic-drive-organizer/internal/plan"
)

// State is the review loop's position in its lifecycle.
type State int

// Review states. The loop starts Reviewing and ends in exactly one of the
// two terminal states.
const (
	StateReviewing State = iota
	StateApproved
	StateCancelled
)

// Reviewer runs the interactive review loop over a plan. It is synchronous
// and single-threaded: it blocks on operator input and is the only mutator
// of the plan while running.
type Reviewer struct {
	reader *bufio.Reader
	writer io.Writer
	state  State
}

// NewReviewer creates a reviewer reading operator input from reader and
// writing prompts to writer. Nil arguments default to stdin/stdout.
func NewReviewer(reader io.Reader, writer io.Writer) *Reviewer {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Reviewer{
		reader: bufio.NewReader(reader),
		writer: writer,
		state:  StateReviewing,
	}
}

// State returns the reviewer's current state.
func (r *Reviewer) State() State {
	return r.state
}

// Run loops until the operator approves or cancels. An approved run returns
// the (possibly mutated) plan; a cancelled run returns nil, signalling that
// no changes should be made. Every invalid selection is an explained no-op
// that returns to the menu.
func (r *Reviewer) Run(ctx context.Context, p *plan.OrganizationPlan) (*plan.OrganizationPlan, error) {
	for r.state == StateReviewing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		r.println(RenderPlan(p))
		r.println(FormatPrompt("Options:"))
		r.println("  [A] Approve and execute this plan")
		r.println("  [R] Rename a folder")
		r.println("  [S] Skip a file (remove from plan)")
		r.println("  [M] Move a file to a different folder")
		r.println("  [C] Cancel (make no changes)")

		choice, err := r.readLine("Your choice")
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(choice) {
		case "a":
			confirmed, err := r.confirm("Are you sure you want to proceed?")
			if err != nil {
				return nil, err
			}
			if confirmed {
				r.state = StateApproved
			} else {
				r.println(FormatInfo("Okay, returning to review..."))
			}
		case "r":
			if err := r.renameFolder(p); err != nil {
				return nil, err
			}
		case "s":
			if err := r.skipFile(p); err != nil {
				return nil, err
			}
		case "m":
			if err := r.moveFile(p); err != nil {
				return nil, err
			}
		case "c":
			confirmed, err := r.confirm("Cancel and make no changes?")
			if err != nil {
				return nil, err
			}
			if confirmed {
				r.state = StateCancelled
			}
		default:
			r.println(FormatWarning(fmt.Sprintf("Unknown option: %s", choice)))
		}
	}

	if r.state == StateCancelled {
		return nil, nil
	}
	return p, nil
}

// renameFolder prompts for a folder and a new name, then applies the rename.
func (r *Reviewer) renameFolder(p *plan.OrganizationPlan) error {
	folders := p.Folders()
	r.println(FormatInfo("Folders in plan:"))
	for i, folder := range folders {
		marker := ""
		if p.IsNew(folder) {
			marker = WarningStyle.Render(" (new)")
		}
		r.println(fmt.Sprintf("  [%d] %s%s", i+1, folder, marker))
	}

	idx, ok, err := r.readIndex("Folder number to rename (0 to cancel)", len(folders))
	if err != nil || !ok {
		return err
	}

	oldName := folders[idx]
	newName, err := r.readLine(fmt.Sprintf("New name for %q", oldName))
	if err != nil {
		return err
	}
	if newName == "" {
		r.println(FormatInfo("Cancelled (empty name)"))
		return nil
	}

	switch err := p.RenameFolder(oldName, newName); {
	case errors.Is(err, common.ErrFolderConflict):
		r.println(FormatWarning(fmt.Sprintf("A folder named %q is already in the plan - nothing changed", newName)))
	case errors.Is(err, common.ErrFolderNotFound):
		r.println(FormatWarning("That folder is no longer in the plan - nothing changed"))
	case err != nil:
		return err
	default:
		r.println(FormatSuccess(fmt.Sprintf("Renamed %q → %q", oldName, newName)))
	}
	return nil
}

// skipFile prompts for a file and removes it from the plan.
func (r *Reviewer) skipFile(p *plan.OrganizationPlan) error {
	files := p.Files()
	r.printFileList(files)

	idx, ok, err := r.readIndex("File number to skip (0 to cancel)", len(files))
	if err != nil || !ok {
		return err
	}

	file := files[idx]
	if !p.RemoveFile(file.FileID) {
		r.println(FormatWarning("That file is no longer in the plan - nothing changed"))
		return nil
	}
	r.println(FormatSuccess(fmt.Sprintf("Removed %q from plan", file.FileName)))
	return nil
}

// moveFile prompts for a file and a destination (existing folder by index,
// or a newly typed name), then re-files it.
func (r *Reviewer) moveFile(p *plan.OrganizationPlan) error {
	files := p.Files()
	r.printFileList(files)

	idx, ok, err := r.readIndex("File number to move (0 to cancel)", len(files))
	if err != nil || !ok {
		return err
	}
	file := files[idx]

	r.println(FormatInfo(fmt.Sprintf("Moving %q (currently → %s)", file.FileName, file.SuggestedFolder)))
	r.println(FormatInfo("Available destinations:"))
	folders := p.Folders()
	for i, folder := range folders {
		r.println(fmt.Sprintf("  [%d] %s", i+1, folder))
	}
	r.println("  [N] Create new folder")

	dest, err := r.readLine("Destination (number or N)")
	if err != nil {
		return err
	}

	var destination string
	if strings.EqualFold(dest, "n") {
		destination, err = r.readLine("New folder name")
		if err != nil {
			return err
		}
		if destination == "" {
			r.println(FormatInfo("Cancelled (empty name)"))
			return nil
		}
	} else {
		destIdx, convErr := strconv.Atoi(dest)
		if convErr != nil || destIdx < 1 || destIdx > len(folders) {
			r.println(FormatWarning("Invalid folder number - nothing changed"))
			return nil
		}
		destination = folders[destIdx-1]
	}

	switch err := p.Move(file.FileID, destination); {
	case errors.Is(err, common.ErrFileNotFound):
		r.println(FormatWarning("That file is no longer in the plan - nothing changed"))
	case err != nil:
		return err
	default:
		r.println(FormatSuccess(fmt.Sprintf("Moved %q → %q", file.FileName, destination)))
	}
	return nil
}

func (r *Reviewer) printFileList(files []model.ClassificationResult) {
	r.println(FormatInfo("Files in plan:"))
	for i, file := range files {
		r.println(fmt.Sprintf("  [%d] %s → %s", i+1, file.FileName, file.SuggestedFolder))
	}
}

// confirm asks a yes/no question; only a literal "yes" confirms.
func (r *Reviewer) confirm(question string) (bool, error) {
	answer, err := r.readLine(question + " (yes/no)")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

// readIndex reads a 1-based selection. ok is false for 0 (operator cancel)
// and for out-of-range or non-numeric input, both explained no-ops.
func (r *Reviewer) readIndex(prompt string, max int) (int, bool, error) {
	input, err := r.readLine(prompt)
	if err != nil {
		return 0, false, err
	}

	n, convErr := strconv.Atoi(input)
	if convErr != nil {
		r.println(FormatWarning("Invalid input - nothing changed"))
		return 0, false, nil
	}
	if n == 0 {
		return 0, false, nil
	}
	if n < 1 || n > max {
		r.println(FormatWarning("Invalid selection - nothing changed"))
		return 0, false, nil
	}
	return n - 1, true, nil
}

func (r *Reviewer) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprintf(r.writer, "%s: ", FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := r.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && input == "" {
			return "", fmt.Errorf("input terminated")
		}
		if err != io.EOF {
			return "", err
		}
	}
	return strings.TrimSpace(input), nil
}

func (r *Reviewer) println(s string) {
	_, _ = fmt.Fprintln(r.writer, s)
}
