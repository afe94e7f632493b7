package llm

import (
	"fmt"
	"strings"
)

// buildPrompt assembles the classification prompt: the assistant role, the
// current folder inventory, the labeling policy, and the file to classify.
func buildPrompt(fileName, snippet string, knownFolders []string) string {
	var folderList string
	if len(knownFolders) > 0 {
		var b strings.Builder
		for _, folder := range knownFolders {
			fmt.Fprintf(&b, "  - %s\n", folder)
		}
		folderList = strings.TrimRight(b.String(), "\n")
	} else {
		folderList = "  (No existing folders)"
	}

	prompt := fmt.Sprintf(`You are a file organization assistant. Your job is to analyze files
and decide which folder they belong in.

EXISTING FOLDERS:
%s

YOUR TASK:
Given a file name, decide where it should be organized. You have two options:
1. Place it in an EXISTING folder (if it's a good match)
2. Suggest a NEW folder name (if no existing folder fits well)

CRITICAL RULES:
- NEVER use "Miscellaneous" or "Uncategorized" as a folder name
- ALWAYS suggest a SPECIFIC, descriptive folder name
- When in doubt, create a new specific folder rather than using a generic one
- Look for context clues: course codes, subjects, document types

FOLDER NAMING GUIDELINES:
- Use clear, concise folder names (2-4 words max)
- Use Title Case (e.g., "History Essays" not "history essays")
- Be specific: "African History" is better than "History"
- Group by PURPOSE or SUBJECT, not just file type

RESPOND WITH ONLY A JSON OBJECT in this exact format:
{
    "suggested_folder": "Specific Folder Name Here",
    "is_new_folder": true or false,
    "confidence": "high" or "medium" or "low",
    "reasoning": "Brief explanation of why this folder fits"
}

IMPORTANT:
- Return ONLY the JSON object, no other text
- "is_new_folder" should be true only if the folder doesn't exist in the list above
- Be decisive - pick the BEST option, don't hedge

FILE TO CLASSIFY: %s`, folderList, fileName)

	if snippet != "" {
		prompt += fmt.Sprintf("\n\nFILE CONTENT PREVIEW:\n%s", snippet)
	}

	return prompt
}
