package frequency

import (
	"time"

	"WordFreq/internal/analysis"
)

// Analysis is the ranked result of analyzing one text.
type Analysis struct {
	ID          string        `json:"id,omitempty"`
	Analyzer    string        `json:"analyzer"`
	Entries     RankedList    `json:"entries"`
	Total       int           `json:"total"`
	Distinct    int           `json:"distinct"`
	Fingerprint uint64        `json:"fingerprint"`
	CreatedAt   time.Time     `json:"created_at"`
	Duration    time.Duration `json:"duration_ns"`
}

// Analyze tokenizes text with a and ranks the resulting terms. The result
// is built from scratch on every call.
func Analyze(text string, name string, a analysis.Analyzer) *Analysis {
	return AnalyzeTop(text, name, a, 0)
}

// AnalyzeTop is Analyze keeping only the k best-ranked entries. Total and
// Distinct still describe the whole text. k <= 0 keeps every entry.
func AnalyzeTop(text string, name string, a analysis.Analyzer, k int) *Analysis {
	start := time.Now()
	table := Count(analysis.Terms(a.Analyze("text", text)))
	return &Analysis{
		Analyzer:    name,
		Entries:     table.TopK(k),
		Total:       table.Total(),
		Distinct:    len(table),
		Fingerprint: Fingerprint(text),
		CreatedAt:   start,
		Duration:    time.Since(start),
	}
}
