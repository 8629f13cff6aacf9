// Package llmjson parses JSON objects out of raw LLM responses. Models tend to
// wrap their answer in a markdown code fence even when told not to, so the
// fence is stripped before parsing.
package llmjson

import (
	"encoding/json"
	"strings"

	"adwizard/internal/apperr"
)

// Unfence removes a surrounding ```json / ``` code fence, if present.
func Unfence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// Parse unfences and decodes a JSON object. On failure it returns an
// *apperr.FormatError carrying the raw upstream text.
func Parse(text string) (map[string]any, error) {
	cleaned := Unfence(text)

	var result map[string]any
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &apperr.FormatError{Raw: cleaned, Err: err}
	}
	return result, nil
}
