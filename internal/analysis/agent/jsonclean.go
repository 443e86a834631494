package agent

import "strings"

// CleanResponse strips markdown code fences from a model response and
// extracts the first-`{`-to-last-`}` span. This is a best-effort heuristic,
// not a JSON tokenizer: braces inside string values or multiple top-level
// objects are not handled. When no brace span exists the input is returned
// unchanged so the parse error downstream carries the original text.
func CleanResponse(text string) string {
	s := strings.ReplaceAll(text, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return text
}
