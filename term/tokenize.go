package term

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

func isTermRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Tokenize splits text into search tokens. Tokens are runs of letters, digits,
// and combining marks. Each token is NFKC normalized and case folded. Tokens
// longer than MaxTermLength bytes are dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(norm.NFKC.String(text), func(r rune) bool {
		return !isTermRune(r)
	})

	// a Caser keeps state, so one per call
	fold := cases.Fold()

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := fold.String(f)
		if len(tok) > MaxTermLength {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
