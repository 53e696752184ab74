package slug

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases s, collapses every run of characters outside [a-z0-9] into
// a single hyphen and trims hyphens from both ends.
func Make(s string) string {
	out := nonAlnumRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(out, "-")
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
