// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleText is a short passage with repeated words, mixed case and
// punctuation from the delimiter set.
const SampleText = `It was the best of times, it was the worst of times;
it was the age of wisdom, it was the age of foolishness: it was the epoch of
belief (it was the epoch of incredulity) - "it was the season of Light!"`

// SampleTotal is the number of words in SampleText.
const SampleTotal = 42

// WriteTextFile writes content to name inside a fresh temporary directory
// and returns the file's path.
func WriteTextFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
