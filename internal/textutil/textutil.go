// Package textutil provides small text helpers shared across the
// evaluation pipeline.
package textutil

import "strings"

// ellipsis is appended when text is cut short.
const ellipsis = "..."

// Truncate shortens text to at most maxLen characters, appending an
// ellipsis when content was removed. Values of maxLen smaller than the
// ellipsis itself return the bare ellipsis prefix of the text.
func Truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= len(ellipsis) {
		return text[:maxLen]
	}
	return text[:maxLen-len(ellipsis)] + ellipsis
}

// Sections holds the coarse parts of an article found by SplitSections.
type Sections struct {
	Title string
	Body  string
}

// SplitSections extracts a title heuristic from an article: the first
// non-empty line is treated as the title, the full text as the body.
func SplitSections(articleText string) Sections {
	s := Sections{Body: articleText}
	for _, line := range strings.Split(articleText, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			s.Title = trimmed
			break
		}
	}
	return s
}
