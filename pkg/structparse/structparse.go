// Package structparse decodes loosely structured LLM output into typed
// records. Model responses are treated as untrusted free text: the caller
// always supplies a fallback value, and a decode failure is never an error.
package structparse

import (
	"encoding/json"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// Decode parses raw text as JSON into a copy of fallback. Keys present in
// the text overwrite fields of the copy; keys the text omits keep the
// fallback's values. The returned flag reports whether the fallback was
// used unchanged because the text could not be decoded at all.
func Decode[T any](raw string, fallback T) (T, bool) {
	out := fallback
	cleaned := Sanitize(raw)
	if strings.TrimSpace(cleaned) == "" {
		return fallback, true
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return fallback, true
	}
	return out, false
}

// Sanitize removes markdown code fences and leading/trailing prose that
// LLMs often add around JSON output.
func Sanitize(text string) string {
	matches := codeFenceRe.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// No code block: find first [ or { and last ] or }
	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}
