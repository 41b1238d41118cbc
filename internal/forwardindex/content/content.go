// Package content provides the two standard process_content strategies:
// a whitespace splitter for plain text, and an HTML tag-stripping
// alphanumeric splitter. Both satisfy forwardindex.ContentFunc.
package content

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Whitespace splits on runs of whitespace, the simplest process_content
// strategy and the one the reference implementation uses for plain text.
func Whitespace(text string, emit func(term string)) {
	for _, field := range strings.Fields(text) {
		emit(field)
	}
}

// HTML strips tags from text via golang.org/x/net/html and splits what
// remains on runs of non-alphanumeric characters, the standard instance
// for HTML-sourced documents. Unlike the reference implementation, it does
// not attempt to skip a leading header block before the first blank line;
// that was a format-sniffing concern for headered record formats, not part
// of HTML extraction itself.
func HTML(text string, emit func(term string)) {
	cleaned := cleanText(text)
	if cleaned == "" {
		return
	}
	start := -1
	for i, r := range cleaned {
		if isAlphaNumeric(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(cleaned[start:i])
			start = -1
		}
	}
	if start >= 0 {
		emit(cleaned[start:])
	}
}

func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// cleanText walks the HTML token stream and concatenates every text node,
// discarding tags, comments, and doctypes.
func cleanText(markup string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
}
