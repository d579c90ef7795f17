package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/config"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/server"
)

const shutdownTimeout = 10 * time.Second

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Serve POST /api/comment, GET /api/health and GET /metrics; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "override listen port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}

	d, err := buildDispatcher(cfg)
	if err != nil {
		return err
	}
	if _, err := d.Resolve(); err != nil {
		// Requests will fail with 500 until the configuration is fixed.
		log.Warn().Err(err).Str("provider", d.ProviderName()).Msg("provider not ready")
	} else {
		log.Info().Str("provider", d.ProviderName()).Msg("provider ready")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.SetupMux(d, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, srv, cfg)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, cfg *config.Config) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("allowed_origin", cfg.AllowedOrigin).
			Dur("request_timeout", cfg.RequestTimeout).
			Msg("codecomment api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info().Msg("server stopped")
		return nil
	})

	return g.Wait()
}
