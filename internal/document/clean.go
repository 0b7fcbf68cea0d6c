package document

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	reHorizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)
	reBlankLines      = regexp.MustCompile(`\n{3,}`)
)

// printable reports whether r counts as text. Replacement runes left by
// broken decoders are treated as garbage.
func printable(r rune) bool {
	if r == '\n' || r == '\t' || r == '\r' {
		return true
	}
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsPrint(r) || unicode.IsSpace(r)
}

// stripNonPrintable returns s without non-printable runes plus the rune
// counts before and after.
func stripNonPrintable(s string) (string, int, int) {
	var b strings.Builder
	b.Grow(len(s))
	total, kept := 0, 0
	for _, r := range s {
		total++
		if !printable(r) {
			continue
		}
		kept++
		b.WriteRune(r)
	}
	return b.String(), total, kept
}

// Clean normalizes whitespace while keeping line structure, which the
// classifiers rely on.
func Clean(s string) string {
	s, _, _ = stripNonPrintable(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reHorizontalSpace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = reBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
