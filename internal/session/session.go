// Package session holds the per-user state of the analyzer: the current
// text, the last analysis and the typing timer.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"WordFreq/internal/analysis"
	"WordFreq/internal/document"
	"WordFreq/internal/frequency"
	"WordFreq/internal/timer"
)

// Options configures a Session.
type Options struct {
	// AnalyzerName labels analyses; Analyzer performs the tokenization.
	AnalyzerName string
	Analyzer     analysis.Analyzer

	// LoadOptions are passed to document.Load.
	LoadOptions []document.Option

	// Clock drives the typing timer. Nil uses time.Now.
	Clock timer.Clock

	// Logger for session events. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns Options using the delimiter analyzer.
func DefaultOptions() Options {
	return Options{
		AnalyzerName: analysis.NameDelimiter,
		Analyzer:     analysis.NewDelimiterAnalyzer(),
	}
}

// AnalysisResult is delivered by AnalyzeAsync.
type AnalysisResult struct {
	Analysis *frequency.Analysis
	Err      error
}

// Session is safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	opts   Options
	timer  *timer.Timer
	logger *slog.Logger

	mu    sync.RWMutex
	text  string
	last  *frequency.Analysis
	index *frequency.PrefixIndex

	// seq numbers analysis snapshots; lastSeq is the snapshot behind last.
	seq     uint64
	lastSeq uint64
}

// New creates an empty session.
func New(opts Options) *Session {
	if opts.Analyzer == nil {
		def := DefaultOptions()
		opts.AnalyzerName, opts.Analyzer = def.AnalyzerName, def.Analyzer
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := NewID()
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		opts:      opts,
		timer:     timer.New(opts.Clock),
		logger:    logger.With("session", id),
	}
}

// Text returns the current text.
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// SetText replaces the current text.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Load replaces the current text with the contents of the file at path.
// On failure the previous text is left unchanged.
func (s *Session) Load(path string) error {
	text, err := document.Load(path, s.opts.LoadOptions...)
	if err != nil {
		s.logger.Warn("load failed, keeping previous text", "path", path, "error", err)
		return err
	}
	s.SetText(text)
	s.logger.Info("document loaded", "path", path, "bytes", len(text))
	return nil
}

// Analyze ranks the words of the current text and remembers the result.
// When analyses overlap, the one started last is remembered, whichever
// finishes first.
func (s *Session) Analyze() *frequency.Analysis {
	s.mu.Lock()
	s.seq++
	seq, text := s.seq, s.text
	s.mu.Unlock()

	a := frequency.Analyze(text, s.opts.AnalyzerName, s.opts.Analyzer)
	a.ID = NewID()
	idx := frequency.NewPrefixIndex(a.Entries)

	s.mu.Lock()
	stale := seq < s.lastSeq
	if !stale {
		s.last, s.index, s.lastSeq = a, idx, seq
	}
	s.mu.Unlock()

	if stale {
		s.logger.Debug("discarding superseded analysis", "analysis", a.ID)
		return a
	}
	s.logger.Debug("analysis complete",
		"analysis", a.ID,
		"total", a.Total,
		"distinct", a.Distinct,
		"duration", a.Duration,
	)
	return a
}

// AnalyzeAsync runs Analyze on its own goroutine. The returned channel
// receives exactly one result; if ctx ends first the result carries
// ctx.Err() and the analysis is still recorded once it finishes.
func (s *Session) AnalyzeAsync(ctx context.Context) <-chan AnalysisResult {
	out := make(chan AnalysisResult, 1)
	done := make(chan *frequency.Analysis, 1)
	go func() { done <- s.Analyze() }()
	go func() {
		select {
		case a := <-done:
			out <- AnalysisResult{Analysis: a}
		case <-ctx.Done():
			out <- AnalysisResult{Err: ctx.Err()}
		}
	}()
	return out
}

// Last returns the most recent analysis, or nil.
func (s *Session) Last() *frequency.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Words returns entries of the last analysis, filtered by prefix and cut to
// topK (topK <= 0 keeps all). The second result is false when the session
// has not been analyzed.
func (s *Session) Words(prefix string, topK int) (frequency.RankedList, bool) {
	s.mu.RLock()
	last, idx := s.last, s.index
	s.mu.RUnlock()
	if last == nil {
		return nil, false
	}
	if prefix != "" {
		return idx.TopWithPrefix(prefix, topK), true
	}
	return last.Entries.Top(topK), true
}

// Lookup returns the count of word in the last analysis. The second result
// is false when the session has not been analyzed or word does not occur.
func (s *Session) Lookup(word string) (int, bool) {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()
	if idx == nil {
		return 0, false
	}
	return idx.Count(word)
}

// WordCount returns the sum of all word counts of the current text.
func (s *Session) WordCount() int {
	return frequency.Count(analysis.Terms(s.opts.Analyzer.Analyze("text", s.Text()))).Total()
}

// StartTimer starts the typing timer.
func (s *Session) StartTimer() error {
	if err := s.timer.Start(); err != nil {
		return err
	}
	s.logger.Info("timer started")
	return nil
}

// StopTimer stops the typing timer and reports the speed at which the
// current text was typed.
func (s *Session) StopTimer() (timer.Result, error) {
	res, err := s.timer.Stop(s.WordCount())
	if err != nil {
		return res, err
	}
	s.logger.Info("timer stopped", "words", res.Words, "elapsed", res.Elapsed, "wpm", res.WPM)
	return res, nil
}

// TimerRunning reports whether the typing timer is running.
func (s *Session) TimerRunning() bool {
	return s.timer.Running()
}

// Info summarizes the session for listing.
func (s *Session) Info() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info := map[string]interface{}{
		"id":            s.ID,
		"created_at":    s.CreatedAt,
		"analyzer":      s.opts.AnalyzerName,
		"text_bytes":    len(s.text),
		"timer_running": s.timer.Running(),
	}
	if s.last != nil {
		info["last_analysis"] = map[string]interface{}{
			"id":       s.last.ID,
			"total":    s.last.Total,
			"distinct": s.last.Distinct,
		}
	}
	return info
}
