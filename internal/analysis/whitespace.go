package analysis

import "unicode"

// WhitespaceAnalyzer splits text on whitespace without any normalization.
type WhitespaceAnalyzer struct{}

// NewWhitespaceAnalyzer creates a new WhitespaceAnalyzer.
func NewWhitespaceAnalyzer() *WhitespaceAnalyzer {
	return &WhitespaceAnalyzer{}
}

// Analyze splits the input on whitespace, preserving case and punctuation.
func (a *WhitespaceAnalyzer) Analyze(_ string, text string) []Token {
	return scan(text, unicode.IsSpace)
}
