package cli

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"WordFreq/internal/document"
	"WordFreq/internal/frequency"
	"WordFreq/internal/report"
	"WordFreq/internal/session"
	"WordFreq/internal/storage"
)

type analyzeFlags struct {
	prefix   string
	format   string
	out      string
	chart    string
	progress bool
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze [FILE]",
		Short: "Rank the words of FILE (or stdin) by frequency",
		Example: `  wordfreq analyze book.txt --top-k 20
  cat notes.txt | wordfreq analyze --format json
  wordfreq analyze book.txt --out report.json.sz --format json --chart top.png
  wordfreq analyze book.txt.sz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			return a.runAnalyze(cmd, path, f)
		},
	}
	cmd.Flags().Int("top-k", 0, "show only the N most frequent words (0 = all)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "show only words starting with this prefix")
	cmd.Flags().StringVar(&f.format, "format", string(report.FormatText), "output format: text or json")
	cmd.Flags().StringVar(&f.out, "out", "", "also write the report to this file (.sz compresses)")
	cmd.Flags().StringVar(&f.chart, "chart", "", "write a PNG bar chart of the listed words")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "show a progress bar while reading FILE")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, path string, f analyzeFlags) error {
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}
	if storage.IsCompressed(f.chart) {
		return errors.Wrapf(report.ErrCompressedChart, "--chart %s", f.chart)
	}

	var extra []document.Option
	if f.progress {
		extra = append(extra, document.WithProgress(cmd.ErrOrStderr()))
	}
	opts, err := a.sessionOptions(extra...)
	if err != nil {
		return err
	}
	s := session.New(opts)

	if path == "" {
		text, err := document.Read(cmd.InOrStdin())
		if err != nil {
			return err
		}
		s.SetText(text)
	} else if err := s.Load(path); err != nil {
		return err
	}

	res := <-s.AnalyzeAsync(commandContext(cmd))
	if res.Err != nil {
		return res.Err
	}
	entries, _ := s.Words(f.prefix, a.cfg.TopK)

	if err := report.Write(cmd.OutOrStdout(), format, res.Analysis, entries); err != nil {
		return err
	}
	if f.out != "" {
		if err := report.WriteFile(f.out, format, res.Analysis, entries); err != nil {
			return err
		}
		a.logger.Info("report written", "path", f.out)
	}
	if f.chart != "" {
		if err := writeChart(f.chart, path, entries); err != nil {
			return err
		}
		a.logger.Info("chart written", "path", f.chart)
	}
	return nil
}

// maxChartBars keeps unbounded listings readable when charted.
const maxChartBars = 30

func writeChart(out, source string, entries frequency.RankedList) error {
	title := "Word frequency"
	if source != "" {
		title += ": " + filepath.Base(source)
	}
	return report.WriteChart(out, title, entries.Top(maxChartBars))
}

