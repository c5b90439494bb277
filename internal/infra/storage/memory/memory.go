package memory

import (
	"context"
	"sync"

	"github.com/vietddude/namecheck/internal/infra/storage"
)

// Registry is an in-process NameRegistry.
type Registry struct {
	names map[string]struct{}
	mu    sync.RWMutex
}

// NewRegistry creates a registry seeded with taken names.
func NewRegistry(taken ...string) *Registry {
	r := &Registry{names: make(map[string]struct{}, len(taken))}
	for _, name := range taken {
		r.names[storage.NormalizeName(name)] = struct{}{}
	}
	return r
}

func (r *Registry) IsTaken(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.names[storage.NormalizeName(name)]
	return ok, nil
}

func (r *Registry) Reserve(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := storage.NormalizeName(name)
	if _, ok := r.names[key]; ok {
		return storage.ErrNameTaken
	}
	r.names[key] = struct{}{}
	return nil
}

func (r *Registry) Health(ctx context.Context) error {
	return nil
}

func (r *Registry) Close() error {
	return nil
}

// Len returns the number of taken names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}
