package artex

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// WordCount returns the number of whitespace-delimited words in htmlOrText
// once all markup tags are removed. Every tag counts as a word boundary.
func WordCount(htmlOrText string) int {
	if htmlOrText == "" {
		return 0
	}
	return len(strings.Fields(tagRe.ReplaceAllString(htmlOrText, " ")))
}
