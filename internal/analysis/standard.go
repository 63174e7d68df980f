package analysis

import (
	"strings"
	"unicode"
)

// StandardAnalyzer keeps runs of letters, digits and underscores and
// lowercases them. Unlike DelimiterAnalyzer it drops every other symbol.
type StandardAnalyzer struct{}

// NewStandardAnalyzer creates a new StandardAnalyzer.
func NewStandardAnalyzer() *StandardAnalyzer {
	return &StandardAnalyzer{}
}

// Analyze lowercases the input and splits it on non-word runes.
func (a *StandardAnalyzer) Analyze(_ string, text string) []Token {
	return scan(strings.ToLower(text), func(r rune) bool { return !isWordRune(r) })
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
