package utils

import (
	"strings"
	"unicode"
)

// SanitizeName normalizes a room/lab name: trims, collapses inner runs of
// whitespace to a single space, drops control characters.
func SanitizeName(input string) string {
	var result strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(input) {
		if unicode.IsSpace(r) {
			if !lastSpace {
				result.WriteRune(' ')
			}
			lastSpace = true
			continue
		}
		lastSpace = false
		if unicode.IsPrint(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
