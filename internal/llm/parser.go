package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonObjectRe = regexp.MustCompile(`(?s)\{[^{}]*\}`)

// parseSuggestion extracts the suggestion JSON from a model response.
// Models wrap output in markdown fences or surrounding prose more often than
// they should; both are stripped before giving up.
func parseSuggestion(content string) (suggestion, error) {
	text := strings.TrimSpace(content)

	if strings.HasPrefix(text, "```") {
		firstNewline := strings.Index(text, "\n")
		lastFence := strings.LastIndex(text, "```")
		if firstNewline >= 0 && lastFence > firstNewline {
			text = strings.TrimSpace(text[firstNewline:lastFence])
		}
	}

	var s suggestion
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		return s, nil
	}

	if match := jsonObjectRe.FindString(text); match != "" {
		if err := json.Unmarshal([]byte(match), &s); err == nil {
			return s, nil
		}
	}

	return suggestion{}, fmt.Errorf("could not parse model response as JSON: %.100s", text)
}
