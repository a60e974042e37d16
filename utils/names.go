package utils

import (
	"regexp"
	"strings"
)

var (
	parenNoteRe = regexp.MustCompile(`[（(].*?[）)]`)
	separatorRe = regexp.MustCompile(`[、，,]`)
)

// SplitNames parses a raw multi-name input: names may be separated by
// whitespace, comma, fullwidth comma or enumeration comma, and
// parenthesized annotations (e.g. "王小明（新生）") are dropped.
func SplitNames(raw string) []string {
	if raw == "" {
		return nil
	}
	s := parenNoteRe.ReplaceAllString(raw, "")
	s = separatorRe.ReplaceAllString(s, " ")

	var names []string
	for _, n := range strings.Fields(s) {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
