package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	server "starfall/server"
	servernet "starfall/server/internal/net"
)

type Config struct {
	Addr   string
	World  server.WorldConfig
	Logger zerolog.Logger
}

// Run wires the hub, the liveness loop, and the HTTP surface together
// and serves until the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	hub := server.NewHubWithConfig(cfg.World, cfg.Logger)

	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{Logger: cfg.Logger})
	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	cfg.Logger.Info().Str("addr", cfg.Addr).Msg("server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
