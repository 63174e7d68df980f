package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WordFreq/internal/analysis"
	"WordFreq/internal/frequency"
	"WordFreq/internal/testutil"
	"WordFreq/internal/timer"
)

func TestSession_AnalyzeCurrentText(t *testing.T) {
	s := New(DefaultOptions())
	s.SetText("Hello, hello world!")

	a := s.Analyze()
	require.NotNil(t, a)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, analysis.NameDelimiter, a.Analyzer)
	assert.Equal(t, frequency.RankedList{{Word: "hello", Count: 2}, {Word: "world", Count: 1}}, a.Entries)
	assert.Equal(t, 3, a.Total)
	assert.Equal(t, 2, a.Distinct)
	assert.Equal(t, frequency.Fingerprint("Hello, hello world!"), a.Fingerprint)
	assert.Same(t, a, s.Last())
}

func TestSession_AnalyzeRecomputes(t *testing.T) {
	s := New(DefaultOptions())
	s.SetText("a a b")
	first := s.Analyze()

	s.SetText("c")
	second := s.Analyze()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, frequency.RankedList{{Word: "c", Count: 1}}, second.Entries)
}

func TestSession_LoadKeepsTextOnFailure(t *testing.T) {
	path := testutil.WriteTextFile(t, "doc.txt", "first line\nsecond line")

	s := New(DefaultOptions())
	require.NoError(t, s.Load(path))
	assert.Equal(t, "first line\nsecond line\n", s.Text())

	err := s.Load(path + ".missing")
	require.Error(t, err)
	assert.Equal(t, "first line\nsecond line\n", s.Text())
}

func TestSession_Words(t *testing.T) {
	s := New(DefaultOptions())
	_, ok := s.Words("", 0)
	assert.False(t, ok)

	s.SetText("the then the other there the")
	s.Analyze()

	words, ok := s.Words("", 2)
	require.True(t, ok)
	assert.Equal(t, frequency.RankedList{{Word: "the", Count: 3}, {Word: "other", Count: 1}}, words)

	words, ok = s.Words("ther", 0)
	require.True(t, ok)
	assert.Equal(t, frequency.RankedList{{Word: "there", Count: 1}}, words)
}

func TestSession_WordsPrefixTopK(t *testing.T) {
	s := New(DefaultOptions())
	s.SetText("the then the other there the then them")
	s.Analyze()

	words, ok := s.Words("the", 2)
	require.True(t, ok)
	assert.Equal(t, frequency.RankedList{{Word: "the", Count: 3}, {Word: "then", Count: 2}}, words)
}

func TestSession_Lookup(t *testing.T) {
	s := New(DefaultOptions())
	s.SetText("Hello, hello world!")
	_, ok := s.Lookup("hello")
	assert.False(t, ok)

	s.Analyze()
	n, ok := s.Lookup("hello")
	require.True(t, ok)
	assert.Equal(t, 2, n)
	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

// gatedAnalyzer blocks while analyzing the text held, until release is closed.
type gatedAnalyzer struct {
	held    string
	entered chan struct{}
	release chan struct{}
}

func (g *gatedAnalyzer) Analyze(field, text string) []analysis.Token {
	if text == g.held {
		close(g.entered)
		<-g.release
	}
	return analysis.NewDelimiterAnalyzer().Analyze(field, text)
}

func TestSession_OverlappingAnalysesKeepNewest(t *testing.T) {
	g := &gatedAnalyzer{held: "old", entered: make(chan struct{}), release: make(chan struct{})}
	s := New(Options{AnalyzerName: "gated", Analyzer: g})
	s.SetText("old")

	done := make(chan *frequency.Analysis)
	go func() { done <- s.Analyze() }()
	<-g.entered

	s.SetText("new")
	newest := s.Analyze()
	close(g.release)
	superseded := <-done

	assert.Equal(t, frequency.RankedList{{Word: "old", Count: 1}}, superseded.Entries)
	assert.Same(t, newest, s.Last())
	words, ok := s.Words("", 0)
	require.True(t, ok)
	assert.Equal(t, frequency.RankedList{{Word: "new", Count: 1}}, words)
	_, ok = s.Lookup("old")
	assert.False(t, ok)
}

func TestSession_AnalyzeAsync(t *testing.T) {
	s := New(DefaultOptions())
	s.SetText("b a b")

	res := <-s.AnalyzeAsync(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, frequency.RankedList{{Word: "b", Count: 2}, {Word: "a", Count: 1}}, res.Analysis.Entries)
}

func TestSession_AnalyzeAsyncCancelled(t *testing.T) {
	s := New(DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := <-s.AnalyzeAsync(ctx)
	if res.Err != nil {
		assert.ErrorIs(t, res.Err, context.Canceled)
	} else {
		assert.NotNil(t, res.Analysis)
	}
}

type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(15 * time.Second)
	return c.t
}

func TestSession_Timer(t *testing.T) {
	opts := DefaultOptions()
	opts.Clock = (&stepClock{}).Now
	s := New(opts)

	_, err := s.StopTimer()
	assert.ErrorIs(t, err, timer.ErrNotRunning)

	require.NoError(t, s.StartTimer())
	assert.ErrorIs(t, s.StartTimer(), timer.ErrAlreadyRunning)
	assert.True(t, s.TimerRunning())

	s.SetText("one two, three-four five")
	res, err := s.StopTimer()
	require.NoError(t, err)
	assert.Equal(t, 5, res.Words)
	assert.Equal(t, 15*time.Second, res.Elapsed)
	assert.Equal(t, 20, res.WPM)
	assert.False(t, s.TimerRunning())
}

func TestSession_Info(t *testing.T) {
	s := New(DefaultOptions())
	info := s.Info()
	assert.Equal(t, s.ID, info["id"])
	assert.NotContains(t, info, "last_analysis")

	s.SetText("x")
	s.Analyze()
	assert.Contains(t, s.Info(), "last_analysis")
}

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)

	a := m.Create()
	b := m.Create()
	assert.Equal(t, []string{a.ID, b.ID}, m.List())

	got, err := m.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	require.NoError(t, m.Delete(a.ID))
	_, err = m.Get(a.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(a.ID), ErrSessionNotFound)
	assert.Equal(t, []string{b.ID}, m.List())
}

func TestManager_ConcurrentCreate(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := m.Create()
			s.SetText("concurrent words words")
			s.Analyze()
		}()
	}
	wg.Wait()
	assert.Len(t, m.List(), 50)
}

func TestNewID_Sortable(t *testing.T) {
	prev := NewID()
	for i := 0; i < 100; i++ {
		next := NewID()
		require.Less(t, prev, next)
		prev = next
	}
}
