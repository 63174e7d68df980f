package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WordFreq/internal/frequency"
	"WordFreq/internal/report"
	"WordFreq/internal/session"
	"WordFreq/internal/storage"
	"WordFreq/internal/testutil"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test")
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyze_Stdin(t *testing.T) {
	out, err := run(t, "Hello, hello world!\n", "analyze")
	require.NoError(t, err)
	assert.Equal(t, "Word Count: 3\nhello : 2\nworld : 1\n", out)
}

func TestAnalyze_FileTopKJSON(t *testing.T) {
	path := testutil.WriteTextFile(t, "doc.txt", "b a b\nc b a\n")

	out, err := run(t, "", "analyze", path, "--top-k", "2", "--format", "json")
	require.NoError(t, err)

	var got frequency.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 6, got.Total)
	assert.Equal(t, 3, got.Distinct)
	assert.Equal(t, frequency.RankedList{{Word: "b", Count: 3}, {Word: "a", Count: 2}}, got.Entries)
}

func TestAnalyze_Prefix(t *testing.T) {
	path := testutil.WriteTextFile(t, "doc.txt", "the then there other the")

	out, err := run(t, "", "analyze", path, "--prefix", "the")
	require.NoError(t, err)
	assert.Equal(t, "Word Count: 5\nthe : 2\nthen : 1\nthere : 1\n", out)
}

func TestAnalyze_OutputFiles(t *testing.T) {
	path := testutil.WriteTextFile(t, "doc.txt", "one two two three three three")
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.txt.sz")
	chartPath := filepath.Join(dir, "chart.png")

	out, err := run(t, "", "analyze", path, "--out", reportPath, "--chart", chartPath, "--progress")
	require.NoError(t, err)

	rc, err := storage.Open(reportPath)
	require.NoError(t, err)
	defer rc.Close()
	saved, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, out, string(saved))

	info, err := os.Stat(chartPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestAnalyze_CompressedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt.sz")
	require.NoError(t, storage.WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "zip zap zip")
		return err
	}))

	out, err := run(t, "", "analyze", path)
	require.NoError(t, err)
	assert.Equal(t, "Word Count: 3\nzip : 2\nzap : 1\n", out)
}

func TestAnalyze_CompressedChartRefused(t *testing.T) {
	chartPath := filepath.Join(t.TempDir(), "chart.png.sz")
	_, err := run(t, "a b a", "analyze", "--chart", chartPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrCompressedChart)
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := run(t, "", "analyze", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = run(t, "x", "analyze", "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, "x", "analyze", "--analyzer", "nope")
	assert.Error(t, err)

	_, err = run(t, "", "analyze", "a", "b")
	assert.Error(t, err)
}

func TestAnalyze_StandardAnalyzer(t *testing.T) {
	out, err := run(t, "c++ c", "analyze", "--analyzer", "standard")
	require.NoError(t, err)
	assert.Equal(t, "Word Count: 2\nc : 2\n", out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "wordfreq test\n", out)
}

type tickClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(30 * time.Second)
	return c.t
}

func TestTyping(t *testing.T) {
	opts := session.DefaultOptions()
	opts.Clock = (&tickClock{}).Now
	s := session.New(opts)

	var out bytes.Buffer
	in := "\nthe quick brown fox\njumps over the lazy dog\n.\nignored words\n"
	require.NoError(t, runTyping(s, strings.NewReader(in), &out))

	assert.Contains(t, out.String(), "Word Count: 9\n")
	assert.Contains(t, out.String(), "Words Per Minute (WPM): 18\n")
	assert.False(t, s.TimerRunning())
}

func TestTyping_EOFStops(t *testing.T) {
	opts := session.DefaultOptions()
	opts.Clock = (&tickClock{}).Now
	s := session.New(opts)

	var out bytes.Buffer
	require.NoError(t, runTyping(s, strings.NewReader("\nhello world"), &out))
	assert.Contains(t, out.String(), "Words Per Minute (WPM): 4\n")
}

func TestTyping_Command(t *testing.T) {
	out, err := run(t, "\nsome typed words\n.\n", "typing")
	require.NoError(t, err)
	assert.Contains(t, out, "Word Count: 3\n")
	assert.Contains(t, out, "Words Per Minute (WPM):")
}
