package enrichment

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/patterns"
)

// stripHTML converts an HTML job description to plain text. Boards deliver
// descriptions as HTML fragments; plain-text input passes through unchanged.
func stripHTML(content string) string {
	if !strings.Contains(content, "<") {
		return content
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// tokenize lowercases text, splits on non-alphanumeric runes, and drops
// tokens shorter than 2 characters, purely numeric tokens, and stop words.
func tokenize(text string, dicts *patterns.Dictionaries) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 2 || isNumeric(tok) || dicts.IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// ngrams returns all contiguous n-token sequences joined with single spaces.
func ngrams(tokens []string, n int) []string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}
