// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Confidence expresses how certain a classifier is about a suggestion.
type Confidence string

// Confidence levels attached to classification results.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence normalizes a free-form confidence string, defaulting to low.
func ParseConfidence(s string) Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DecisionSource records which stage of the fallback chain produced a result.
type DecisionSource string

// Decision sources.
const (
	DecisionRule      DecisionSource = "rule"
	DecisionHeuristic DecisionSource = "heuristic"
	DecisionFallback  DecisionSource = "fallback"
	DecisionAI        DecisionSource = "ai"
)

// Generic catch-all labels that no classifier is allowed to suggest.
var reservedLabels = map[string]struct{}{
	"miscellaneous": {},
	"uncategorized": {},
	"other":         {},
	"random":        {},
	"stuff":         {},
}

// IsReservedLabel reports whether name is a forbidden generic folder label.
func IsReservedLabel(name string) bool {
	_, ok := reservedLabels[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ClassificationResult is a classifier's decision about where a file belongs.
// SuggestedFolder and IsNewFolder are rewritten by plan mutations when the
// operator renames a folder or moves the file; everything else is immutable
// once produced.
type ClassificationResult struct {
	FileID          string
	FileName        string
	SuggestedFolder string
	IsNewFolder     bool
	Confidence      Confidence
	Source          DecisionSource
	Reasoning       string
}
