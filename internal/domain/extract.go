package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SymbolAlphabet lists the glyphs and combinators that mark a token as
// shorthand wherever they appear inside it.
var SymbolAlphabet = []string{"🍝", "🌶️", "🍰", "→", "✓", "+", "@", ">>", "++", "<<"}

const abbreviationMarks = "+-><@!?"

// ExtractCandidates returns the whitespace-separated tokens of response that
// look like shorthand, in order. Repeated tokens are kept.
func ExtractCandidates(response string) []string {
	var candidates []string
	for _, token := range strings.Fields(response) {
		if IsCandidate(token) {
			candidates = append(candidates, token)
		}
	}

	return candidates
}

func IsCandidate(token string) bool {
	return containsSymbol(token) || isLetterCode(token) || isAbbreviation(token)
}

func containsSymbol(token string) bool {
	for _, symbol := range SymbolAlphabet {
		if strings.Contains(token, symbol) {
			return true
		}
	}

	return false
}

func isLetterCode(token string) bool {
	if utf8.RuneCountInString(token) != 1 {
		return false
	}

	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsUpper(r)
}

func isAbbreviation(token string) bool {
	n := utf8.RuneCountInString(token)
	return n >= 2 && n <= 4 && strings.ContainsAny(token, abbreviationMarks)
}
