// Package timer measures typing speed in words per minute.
package timer

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrAlreadyRunning = errors.New("timer is already running")
	ErrNotRunning     = errors.New("timer is not running")
)

// Clock returns the current instant.
type Clock func() time.Time

// Result is the outcome of one start/stop cycle.
type Result struct {
	StartedAt time.Time     `json:"started_at"`
	StoppedAt time.Time     `json:"stopped_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Words     int           `json:"words"`
	WPM       int           `json:"wpm"`
}

// Timer is a start/stop stopwatch. It is safe for concurrent use.
type Timer struct {
	now Clock

	mu        sync.Mutex
	running   bool
	startedAt time.Time
}

// New creates a stopped Timer. A nil clock uses time.Now.
func New(now Clock) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Start records the start instant.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrAlreadyRunning
	}
	t.running = true
	t.startedAt = t.now()
	return nil
}

// Running reports whether the timer has been started and not yet stopped.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Stop records the stop instant and derives the typing speed for words
// typed since Start.
func (t *Timer) Stop(words int) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return Result{}, ErrNotRunning
	}
	t.running = false
	stoppedAt := t.now()
	elapsed := stoppedAt.Sub(t.startedAt)
	return Result{
		StartedAt: t.startedAt,
		StoppedAt: stoppedAt,
		Elapsed:   elapsed,
		Words:     words,
		WPM:       WordsPerMinute(words, elapsed),
	}, nil
}

// WordsPerMinute computes words / (elapsed seconds / 60), truncated.
// A non-positive elapsed time yields 0.
func WordsPerMinute(words int, elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(float64(words) / (elapsed.Seconds() / 60))
}
