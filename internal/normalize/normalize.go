package normalize

import (
	"regexp"
	"strings"
)

// ProviderLimit is the maximum text length (in characters) accepted per call
// by the translation and sentiment providers.
const ProviderLimit = 4500

var whitespace = regexp.MustCompile(`\s+`)

// Truncate returns at most limit characters of s. Trailing content is dropped
// silently; downstream results reflect only the kept prefix.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Collapse squeezes runs of whitespace into single spaces and trims the ends.
// Scraped article bodies arrive with paragraph breaks and indentation noise.
func Collapse(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
