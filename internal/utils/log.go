package utils

import "strings"

// TruncateForLog puts s on a single line and shortens it to limit runes,
// appending an ellipsis when truncated. Extracted document text is full of
// line breaks and runs of spaces.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
