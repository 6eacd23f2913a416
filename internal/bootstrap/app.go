package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/listing-insights/internal/infra/config"
)

const shutdownGrace = 10 * time.Second

// App owns the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server}
}

// Run serves until ctx is cancelled or the listener fails. On cancellation
// in-flight requests get shutdownGrace to finish.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("http server starting",
		"address", a.server.Addr,
		"default_api_url", a.cfg.Predictor.DefaultAPIURL,
		"enum_base_url", a.cfg.Enums.BaseURL,
		"enum_cache_redis", a.cfg.Enums.Redis.Enabled,
		"form_token", a.cfg.Form.TokenSecret != "",
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received", "grace", shutdownGrace.String())
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := a.server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("drain http server: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}
