package review

import (
	"fmt"
	"strings"

	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
	"github.com/jpmusenge/agentic-drive-organizer/internal/plan"
)

// confidenceIcon annotates each file line with how sure the classifier was.
func confidenceIcon(c model.Confidence) string {
	switch c {
	case model.ConfidenceHigh:
		return SuccessIcon
	case model.ConfidenceMedium:
		return "○"
	default:
		return "?"
	}
}

// RenderPlan formats a plan for terminal display: summary counts, then each
// folder with its files, new folders first.
func RenderPlan(p *plan.OrganizationPlan) string {
	summary := p.Summary()

	var b strings.Builder
	fmt.Fprintf(&b, "Total files to organize: %d\n", summary.TotalFiles)
	fmt.Fprintf(&b, "New folders to create:   %d\n", summary.NewFolders)
	fmt.Fprintf(&b, "Existing folders to use: %d\n", summary.ExistingFolders)

	folders := append(p.NewFolders(), p.ExistingFolders()...)
	for _, folder := range folders {
		files := p.Bucket(folder)
		if len(files) == 0 {
			continue
		}

		b.WriteString("\n")
		if p.IsNew(folder) {
			fmt.Fprintf(&b, "%s %s %s\n", NewIcon, folder, WarningStyle.Render("(new)"))
		} else {
			fmt.Fprintf(&b, "%s %s\n", FolderIcon, folder)
		}

		for _, result := range files {
			fmt.Fprintf(&b, "    %s %s\n", confidenceIcon(result.Confidence), result.FileName)
		}
	}

	return RenderBox("Organization Plan", strings.TrimRight(b.String(), "\n"))
}
