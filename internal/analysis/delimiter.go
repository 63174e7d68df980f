package analysis

import (
	"strings"
	"unicode/utf8"
)

// Delimiters is the fixed set of characters that separate words.
const Delimiters = " \n\t\r\f,.:;?!\"'()-"

var delimiterTable = func() (t [utf8.RuneSelf]bool) {
	for i := 0; i < len(Delimiters); i++ {
		t[Delimiters[i]] = true
	}
	return t
}()

// IsDelimiter reports whether r separates words.
func IsDelimiter(r rune) bool {
	return r >= 0 && r < utf8.RuneSelf && delimiterTable[r]
}

// DelimiterAnalyzer lowercases the whole text and splits it on runs of
// Delimiters. Apostrophes and hyphens are delimiters, so "don't" yields
// "don" and "t".
type DelimiterAnalyzer struct{}

// NewDelimiterAnalyzer creates a new DelimiterAnalyzer.
func NewDelimiterAnalyzer() *DelimiterAnalyzer {
	return &DelimiterAnalyzer{}
}

// Analyze lowercases text and returns every maximal run of non-delimiter
// characters in order.
func (a *DelimiterAnalyzer) Analyze(_ string, text string) []Token {
	return scan(strings.ToLower(text), IsDelimiter)
}

// scan emits each maximal run of runes for which sep is false.
func scan(text string, sep func(rune) bool) []Token {
	var tokens []Token
	start := -1
	for i, r := range text {
		if sep(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Term: text[start:i], Position: len(tokens), StartByte: start, EndByte: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Term: text[start:], Position: len(tokens), StartByte: start, EndByte: len(text)})
	}
	return tokens
}

var defaultAnalyzer = NewDelimiterAnalyzer()

// Tokenize splits text into lowercase word tokens using Delimiters.
// Empty input yields an empty slice.
func Tokenize(text string) []string {
	return Terms(defaultAnalyzer.Analyze("", text))
}
