// Package analysis turns raw text into word tokens.
package analysis

// Token is a single word produced by an analyzer.
// Offsets index the text the analyzer actually scanned; for lowercasing
// analyzers that is the lowercased text.
type Token struct {
	Term      string
	Position  int
	StartByte int
	EndByte   int
}

// Analyzer processes text into a stream of tokens.
// Implementations hold no per-call state and are safe for concurrent use.
type Analyzer interface {
	// Analyze tokenizes the input text and returns tokens with positions.
	Analyze(field string, text string) []Token
}

// Terms extracts the term of every token, preserving order.
func Terms(tokens []Token) []string {
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, len(tokens))
	for i, t := range tokens {
		terms[i] = t.Term
	}
	return terms
}
