package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vietddude/namecheck/internal/infra/storage"
)

// uniqueViolation is the SQLSTATE for a duplicate primary key.
const uniqueViolation = "23505"

// NameRepo implements storage.NameRegistry using PostgreSQL.
type NameRepo struct {
	db *DB
}

// NewNameRepo creates a new PostgreSQL name registry.
func NewNameRepo(db *DB) *NameRepo {
	return &NameRepo{db: db}
}

// IsTaken reports whether name has a row in usernames.
func (r *NameRepo) IsTaken(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM usernames WHERE name = $1)`,
		storage.NormalizeName(name),
	)
	if err != nil {
		return false, fmt.Errorf("failed to look up user name: %w", err)
	}
	return exists, nil
}

// Reserve inserts name; the primary key rejects duplicates.
func (r *NameRepo) Reserve(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usernames (name) VALUES ($1)`,
		storage.NormalizeName(name),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return storage.ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to reserve user name: %w", err)
	}
	return nil
}

// Seed inserts names, skipping ones already present.
func (r *NameRepo) Seed(ctx context.Context, names ...string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO usernames (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			storage.NormalizeName(name),
		); err != nil {
			return fmt.Errorf("failed to seed user name %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func (r *NameRepo) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}

func (r *NameRepo) Close() error {
	return r.db.Close()
}
