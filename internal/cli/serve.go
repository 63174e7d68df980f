package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"WordFreq/internal/server"
	"WordFreq/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word frequency HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx, cmd)
		},
	}
	cmd.Flags().Int("http-port", 0, "port to listen on (default from config, 8080)")
	cmd.Flags().String("load-root", "", `directory clients may load files from (default from config, "."; "" in config allows any path)`)
	return cmd
}

func (a *app) runServe(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger(cmd.OutOrStdout(), a.cfg.LogLevel, true)

	port := a.cfg.HTTP.Port

	opts, err := a.sessionOptions()
	if err != nil {
		return err
	}
	opts.Logger = logger

	logger.Info("starting wordfreq",
		"version", a.version,
		"port", port,
		"analyzer", a.cfg.Analyzer,
		"config", a.configPath,
		"load_root", a.cfg.Load.Root,
	)

	mgr := session.NewManager(opts, logger)
	handler := server.NewHandler(mgr, opts.AnalyzerName, opts.Analyzer, a.cfg.Load.Root, logger)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	// Health check endpoint.
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"version": a.version,
		})
	})

	// Readiness probe.
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
		})
	})

	// Root info endpoint.
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"name":    "wordfreq",
			"version": a.version,
		})
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "serve")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
