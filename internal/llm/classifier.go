package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
	"github.com/jpmusenge/agentic-drive-organizer/internal/rules"
)

// Config holds configuration for the LLM classifier.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	RateLimit   int
}

// Classifier implements the engine.Classifier interface using an LLM API.
type Classifier struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
}

// NewClassifier creates a new LLM-based classifier.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		client, err = newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{
		client:      client,
		logger:      logger,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// NewClassifierWithClient creates a classifier around an existing client.
// Used by tests to substitute a fake transport.
func NewClassifierWithClient(client Client, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client:      client,
		logger:      logger,
		rateLimiter: newRateLimiter(0),
	}
}

// Classify asks the model for a folder suggestion. Malformed responses and
// policy violations (an empty or reserved generic label) are returned as
// errors so the driver can degrade the file to its last-resort label.
func (c *Classifier) Classify(ctx context.Context, file model.File, knownFolders []string, snippet string) (model.ClassificationResult, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return model.ClassificationResult{}, err
	}

	prompt := buildPrompt(file.Name, snippet, knownFolders)

	content, err := c.client.GenerateContent(ctx, prompt)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("model request failed: %w", err)
	}

	s, err := parseSuggestion(content)
	if err != nil {
		return model.ClassificationResult{}, err
	}

	folder := strings.TrimSpace(s.SuggestedFolder)
	if folder == "" {
		return model.ClassificationResult{}, fmt.Errorf("model suggested an empty folder name")
	}
	if model.IsReservedLabel(folder) {
		return model.ClassificationResult{}, fmt.Errorf("model suggested reserved label %q", folder)
	}

	// The model self-reports is_new_folder; recompute against the working
	// folder set so a hallucinated flag cannot desynchronize the plan, and
	// reuse the existing folder's exact casing when there is a match.
	resolved, isNew := rules.ResolveFolder(folder, knownFolders)

	c.logger.Debug("model classification",
		"file_name", file.Name,
		"folder", resolved,
		"is_new", isNew,
		"confidence", s.Confidence)

	return model.ClassificationResult{
		FileID:          file.ID,
		FileName:        file.Name,
		SuggestedFolder: resolved,
		IsNewFolder:     isNew,
		Confidence:      model.ParseConfidence(s.Confidence),
		Source:          model.DecisionAI,
		Reasoning:       s.Reasoning,
	}, nil
}

// Close releases the classifier's background resources.
func (c *Classifier) Close() {
	c.rateLimiter.Close()
}
