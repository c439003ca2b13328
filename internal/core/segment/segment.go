package segment

import (
	"regexp"
	"strings"
)

// Sentence is one unit of extracted document text. Page is 1-based for
// paginated formats and nil for formats without a page concept.
type Sentence struct {
	Text string
	Page *int
}

var whitespace = regexp.MustCompile(`\s+`)

// Clean normalizes raw extracted text: NUL bytes become spaces and runs of
// whitespace collapse to a single space.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\x00", " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Split breaks cleaned text into sentences, cutting after '.', '!' or '?'
// followed by whitespace. Every returned sentence carries the given page and
// is non-empty after trimming. Order follows the input text.
func Split(text string, page *int) []Sentence {
	text = Clean(text)
	if text == "" {
		return nil
	}

	var out []Sentence
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && runes[i+1] != ' ' {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, Sentence{Text: s, Page: page})
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, Sentence{Text: s, Page: page})
	}
	return out
}
