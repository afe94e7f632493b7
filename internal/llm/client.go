// Package llm implements the AI-backed classifier. It conforms to the same
// classification contract as the rule table, so the driver can use either.
package llm

import (
	"context"
)

// Client defines the interface for LLM providers.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// suggestion is the JSON shape the model is instructed to respond with.
type suggestion struct {
	SuggestedFolder string `json:"suggested_folder"`
	IsNewFolder     bool   `json:"is_new_folder"`
	Confidence      string `json:"confidence"`
	Reasoning       string `json:"reasoning"`
}
