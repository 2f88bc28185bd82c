package utils

import (
	"strings"
	"unicode"
)

// CleanText trims s and drops control characters other than newlines and
// tabs. Markup is kept as typed; it is escaped where it is rendered.
// CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(s)
}
