// Package cli implements the wordfreq command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"WordFreq/internal/analysis"
	"WordFreq/internal/config"
	"WordFreq/internal/document"
	"WordFreq/internal/session"
)

// app carries state shared by all subcommands.
type app struct {
	version    string
	configPath string
	cfg        config.Config
	logger     *slog.Logger
	registry   *analysis.Registry
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version, registry: analysis.NewRegistry()}

	root := &cobra.Command{
		Use:           "wordfreq",
		Short:         "Count and rank the words of a text",
		Long:          `wordfreq tokenizes a text, counts every distinct word and lists them by descending frequency. It also measures typing speed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("analyzer", "", "tokenizer: delimiter, standard or whitespace")

	root.AddCommand(
		newAnalyzeCommand(a),
		newTypingCommand(a),
		newServeCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute(version string) error {
	root := NewRootCommand(version)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return err
	}
	return nil
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if _, err := a.registry.Get(cfg.Analyzer); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel, false)
	slog.SetDefault(a.logger)
	return nil
}

// commandContext returns the context the command was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newLogger(w io.Writer, level string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(level)}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// sessionOptions builds session options from the resolved config.
func (a *app) sessionOptions(extra ...document.Option) (session.Options, error) {
	an, err := a.registry.Get(a.cfg.Analyzer)
	if err != nil {
		return session.Options{}, errors.Wrap(err, "select analyzer")
	}
	loadOpts := []document.Option{document.WithMaxBytes(a.cfg.Load.MaxBytes)}
	return session.Options{
		AnalyzerName: a.cfg.Analyzer,
		Analyzer:     an,
		LoadOptions:  append(loadOpts, extra...),
		Logger:       a.logger,
	}, nil
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "wordfreq", a.version)
		},
	}
}
