// Package rules implements the keyword rule table used to classify files
// without calling an external model. The table is an ordered list of
// (pattern, folder) pairs; the first matching pattern wins, so rule order is
// the priority order.
package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
)

// Folder labels used by the fallback chain when no rule matches.
const (
	// DraftsFolder holds files that look like unfinished documents.
	DraftsFolder = "Drafts"
	// LastResortFolder is the named label for files nothing else claims.
	// It is deliberately specific so the classifier never has to fall back
	// to a generic catch-all like "Miscellaneous".
	LastResortFolder = "To Sort"
)

// Rule binds a pattern to a destination folder label.
type Rule struct {
	Pattern string
	Folder  string
}

type compiledRule struct {
	re      *regexp.Regexp
	pattern string
	folder  string
}

// Classifier matches file names against an ordered rule table.
type Classifier struct {
	rules []compiledRule
	mu    sync.RWMutex
}

// NewClassifier compiles the given rules into a classifier. Rule order is
// preserved: earlier rules take priority over later ones.
func NewClassifier(ruleSet []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(ruleSet))
	for _, r := range ruleSet {
		if model.IsReservedLabel(r.Folder) {
			return nil, fmt.Errorf("rule %q maps to reserved label %q", r.Pattern, r.Folder)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, pattern: r.Pattern, folder: r.Folder})
	}
	return &Classifier{rules: compiled}, nil
}

// NewDefaultClassifier returns a classifier loaded with the built-in table.
func NewDefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultRules())
	if err != nil {
		// The default table is compiled in tests; a bad pattern is a bug.
		panic(fmt.Sprintf("default rule table invalid: %v", err))
	}
	return c
}

// decision is the tagged outcome of the rule match / heuristic / last-resort
// fallback chain.
type decision struct {
	folder     string
	source     model.DecisionSource
	confidence model.Confidence
	reasoning  string
}

// Classify maps a file name to a folder suggestion. The content snippet is
// accepted for interface parity with richer classifiers but is not consulted.
// It is a pure function over its inputs and the current rule table, and it
// never returns an error.
func (c *Classifier) Classify(_ context.Context, file model.File, knownFolders []string, _ string) (model.ClassificationResult, error) {
	d := c.decide(file.Name)

	folder, isNew := ResolveFolder(d.folder, knownFolders)

	return model.ClassificationResult{
		FileID:          file.ID,
		FileName:        file.Name,
		SuggestedFolder: folder,
		IsNewFolder:     isNew,
		Confidence:      d.confidence,
		Source:          d.source,
		Reasoning:       d.reasoning,
	}, nil
}

func (c *Classifier) decide(fileName string) decision {
	nameLower := strings.ToLower(fileName)

	c.mu.RLock()
	for _, r := range c.rules {
		if r.re.MatchString(nameLower) {
			c.mu.RUnlock()
			return decision{
				folder:     r.folder,
				source:     model.DecisionRule,
				confidence: model.ConfidenceHigh,
				reasoning:  fmt.Sprintf("Matched pattern %q in filename", r.pattern),
			}
		}
	}
	c.mu.RUnlock()

	if strings.Contains(nameLower, "untitled") {
		return decision{
			folder:     DraftsFolder,
			source:     model.DecisionHeuristic,
			confidence: model.ConfidenceLow,
			reasoning:  "Untitled document - likely a draft",
		}
	}

	return decision{
		folder:     LastResortFolder,
		source:     model.DecisionFallback,
		confidence: model.ConfidenceLow,
		reasoning:  "No clear category detected - needs manual review",
	}
}

// AddRule inserts a rule at the given priority index; a negative priority or
// one past the end appends. Already-produced results are unaffected.
func (c *Classifier) AddRule(pattern, folder string, priority int) error {
	if model.IsReservedLabel(folder) {
		return fmt.Errorf("folder %q is a reserved label", folder)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r := compiledRule{re: re, pattern: pattern, folder: folder}
	if priority < 0 || priority >= len(c.rules) {
		c.rules = append(c.rules, r)
		return nil
	}
	c.rules = append(c.rules[:priority], append([]compiledRule{r}, c.rules[priority:]...)...)
	return nil
}

// RulesForFolder returns all patterns currently mapped to the given folder,
// in priority order. Used for introspection, not by the classification path.
func (c *Classifier) RulesForFolder(folder string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var patterns []string
	for _, r := range c.rules {
		if r.folder == folder {
			patterns = append(patterns, r.pattern)
		}
	}
	return patterns
}

// Rules returns a snapshot of the current table in priority order.
func (c *Classifier) Rules() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Pattern: r.pattern, Folder: r.folder}
	}
	return out
}

// ResolveFolder case-insensitively searches knownFolders for label. If a
// match exists the existing folder's exact casing is reused and the label is
// not new; otherwise the label is kept as-is and reported as new.
func ResolveFolder(label string, knownFolders []string) (string, bool) {
	for _, existing := range knownFolders {
		if strings.EqualFold(existing, label) {
			return existing, false
		}
	}
	return label, true
}
