package utils

import "github.com/microcosm-cc/bluemonday"

// Names and notes are plain text, so strip markup entirely rather than
// allowing a UGC subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes any HTML from user supplied text before it is stored and
// rendered back into views.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
