// Package report renders analyses for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"WordFreq/internal/frequency"
	"WordFreq/internal/storage"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// Write renders a with entries in the given format. entries may be a
// filtered or truncated view of a.Entries; the header always reports the
// full word count.
func Write(w io.Writer, f Format, a *frequency.Analysis, entries frequency.RankedList) error {
	switch f {
	case FormatText:
		return writeText(w, a, entries)
	case FormatJSON:
		return writeJSON(w, a, entries)
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", f)
}

func writeText(w io.Writer, a *frequency.Analysis, entries frequency.RankedList) error {
	if _, err := fmt.Fprintf(w, "Word Count: %d\n", a.Total); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, a *frequency.Analysis, entries frequency.RankedList) error {
	view := *a
	view.Entries = entries
	if view.Entries == nil {
		view.Entries = frequency.RankedList{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&view)
}

// WriteFile renders a report to path atomically. A ".sz" suffix compresses
// the output.
func WriteFile(path string, f Format, a *frequency.Analysis, entries frequency.RankedList) error {
	return storage.WriteFile(path, func(w io.Writer) error {
		return Write(w, f, a, entries)
	})
}
