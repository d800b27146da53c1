package qti

import (
	"regexp"
	"strings"
)

var (
	tagRE   = regexp.MustCompile(`<[^>]+>`)
	spaceRE = regexp.MustCompile(`\s+`)
)

// Sanitize strips markup tags and normalizes whitespace, including the
// non-breaking-space entity in both its literal and decoded forms.
// Sanitizing an already sanitized string is a no-op.
func Sanitize(s string) string {
	s = tagRE.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
