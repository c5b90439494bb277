package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNameTaken is returned when reserving a name that is already taken
	ErrNameTaken = errors.New("user name already taken")
)

// NameRegistry holds the user names that are no longer available.
// Implementations compare names case-insensitively.
type NameRegistry interface {
	// IsTaken reports whether name has been reserved
	IsTaken(ctx context.Context, name string) (bool, error)

	// Reserve marks name as taken; ErrNameTaken if it already is
	Reserve(ctx context.Context, name string) error

	// Health checks that the backend is reachable
	Health(ctx context.Context) error

	// Close releases backend resources
	Close() error
}

// NormalizeName is the canonical form names are stored and compared in.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
