package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases s and collapses every non-alphanumeric run into a single
// hyphen, trimming leading/trailing hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
