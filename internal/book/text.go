package book

import "strings"

// CleanText normalizes free-form answer text for display: surrounding
// whitespace and stray wrapping quotes are trimmed and internal whitespace
// runs collapse to a single space. Empty or whitespace-only input yields "".
func CleanText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"`)

	return strings.Join(strings.Fields(text), " ")
}
