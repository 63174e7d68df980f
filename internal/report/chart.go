package report

import (
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"WordFreq/internal/frequency"
	"WordFreq/internal/storage"
)

var (
	ErrNothingToPlot   = errors.New("no words to plot")
	ErrCompressedChart = errors.New("charts are written as plain PNG")
)

// Chart builds a bar chart with one bar per entry, in rank order.
func Chart(title string, entries frequency.RankedList) (*plot.Plot, error) {
	if len(entries) == 0 {
		return nil, ErrNothingToPlot
	}

	values := make(plotter.Values, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		names[i] = e.Word
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Count"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, errors.Wrap(err, "bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// WriteChart renders entries as a PNG bar chart to path. Compressed
// (".sz") paths are refused.
func WriteChart(path string, title string, entries frequency.RankedList) error {
	if storage.IsCompressed(path) {
		return errors.Wrapf(ErrCompressedChart, "chart %s", path)
	}
	p, err := Chart(title, entries)
	if err != nil {
		return err
	}
	width := vg.Length(len(entries))*vg.Points(28) + vg.Points(120)
	wt, err := p.WriterTo(width, 4*vg.Inch, "png")
	if err != nil {
		return errors.Wrap(err, "render chart")
	}
	return storage.WriteFile(path, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
}
