// Serve command: runs the HTTP API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/routedeck/routedeck/internal/api"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the routedeck HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (default: config listen_addr or :8080)")
}

func runServe() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	cfg := backend.Config()
	addr := cfg.ListenAddr
	if flagListen != "" {
		addr = flagListen
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: api.New(backend, cfg.DefaultRegion, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr, "region", cfg.DefaultRegion, "data_dir", cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
