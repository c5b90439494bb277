package control

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vietddude/namecheck/internal/core/config"
	redisclient "github.com/vietddude/namecheck/internal/infra/redis"
	"github.com/vietddude/namecheck/internal/infra/rpc"
	"github.com/vietddude/namecheck/internal/infra/storage"
	"github.com/vietddude/namecheck/internal/infra/storage/memory"
	"github.com/vietddude/namecheck/internal/infra/storage/postgres"
)

// NewClient builds the availability client described by cfg.
func NewClient(cfg config.ClientConfig) *rpc.Client {
	p := rpc.NewHTTPProvider(cfg.Name, cfg.Timeout)
	retry := rpc.RetryConfig{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		Delay:           cfg.Retry.Delay,
		HonorRetryAfter: cfg.Retry.HonorRetryAfter,
		MaxDelay:        cfg.Retry.MaxDelay,
	}
	return rpc.NewClient(cfg.BaseURL, p, retry)
}

// OpenRegistry connects the name registry selected by cfg.Server.Store and
// seeds it with cfg.Server.Taken. The returned DB is nil unless the store
// is postgres.
func OpenRegistry(ctx context.Context, cfg *config.AppConfig) (storage.NameRegistry, *postgres.DB, error) {
	switch cfg.Server.Store {
	case config.StoreRedis:
		client, err := redisclient.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init redis: %w", err)
		}
		if err := client.Seed(ctx, cfg.Server.Taken...); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		slog.Info("Using Redis registry", "seeded", len(cfg.Server.Taken))
		return client, nil, nil

	case config.StorePostgres:
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		repo := postgres.NewNameRepo(db)
		if err := repo.Seed(ctx, cfg.Server.Taken...); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		slog.Info("Using PostgreSQL registry", "seeded", len(cfg.Server.Taken))
		return repo, db, nil

	default:
		slog.Info("Using Memory registry", "seeded", len(cfg.Server.Taken))
		return memory.NewRegistry(cfg.Server.Taken...), nil, nil
	}
}
