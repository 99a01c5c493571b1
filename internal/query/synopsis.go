package query

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Preview budgets, in characters.
const (
	CardSynopsis  = 120
	SlideSynopsis = 250
)

const ellipsis = "..."

// PlainText strips every tag from s and decodes entities.
func PlainText(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// Synopsis returns the plain text of desc cut to budget characters. The
// ellipsis is appended only when text was cut.
func Synopsis(desc string, budget int) string {
	text := PlainText(desc)
	if budget <= 0 || utf8.RuneCountInString(text) <= budget {
		return text
	}

	runes := []rune(text)
	return string(runes[:budget]) + ellipsis
}
