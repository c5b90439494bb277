package control

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vietddude/namecheck/internal/core/config"
	"github.com/vietddude/namecheck/internal/infra/storage"
	"github.com/vietddude/namecheck/internal/infra/storage/postgres"
	"github.com/vietddude/namecheck/internal/server"
)

// App runs the availability server and owns its registry.
type App struct {
	cfg      *config.AppConfig
	registry storage.NameRegistry
	db       *postgres.DB
	server   *server.Server
	log      *slog.Logger
	errCh    chan error
}

// NewApp opens the registry and prepares the server.
func NewApp(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	registry, db, err := OpenRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	faults := server.Faults{
		ServerErrors: cfg.Server.Faults.ServerErrors,
		Status:       cfg.Server.Faults.Status,
		RetryAfter:   cfg.Server.Faults.RetryAfter,
		Reason:       cfg.Server.Faults.Reason,
	}

	return &App{
		cfg:      cfg,
		registry: registry,
		db:       db,
		server:   server.NewServer(registry, faults, cfg.Server.Port),
		log:      slog.Default().With("component", "app"),
		errCh:    make(chan error, 1),
	}, nil
}

// Start serves in the background. Serve failures are reported on Err.
func (a *App) Start(ctx context.Context) error {
	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Availability server failed", "error", err)
			a.errCh <- err
		}
	}()

	if a.db != nil {
		a.db.StartMetricsCollector(ctx)
	}

	a.log.Info("Availability server started",
		"port", a.cfg.Server.Port,
		"store", a.cfg.Server.Store,
		"injected_faults", a.cfg.Server.Faults.ServerErrors,
	)
	return nil
}

// Err reports a fatal serve error.
func (a *App) Err() <-chan error {
	return a.errCh
}

// Stop shuts the server down and closes the registry.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping availability server...")

	err := a.server.Stop(ctx)
	if cerr := a.registry.Close(); cerr != nil {
		a.log.Warn("Failed to close registry", "error", cerr)
	}
	return err
}
