package helpers

import (
	"regexp"
	"strings"
)

var markupRe = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes HTML/rich-text tags and trims whitespace. Used to decide
// whether editor content is actually empty (e.g. "<p><br></p>" is empty).
func StripMarkup(s string) string {
	return strings.TrimSpace(markupRe.ReplaceAllString(s, ""))
}
