package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vietddude/namecheck/internal/infra/storage"
)

func TestRegistry_SeedAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry("SJobs", " peterfriese ")

	for _, name := range []string{"sjobs", "SJOBS", "peterfriese"} {
		taken, err := r.IsTaken(ctx, name)
		if err != nil {
			t.Fatalf("IsTaken(%q): %v", name, err)
		}
		if !taken {
			t.Errorf("expected %q to be taken", name)
		}
	}

	taken, _ := r.IsTaken(ctx, "johnnyappleseed")
	if taken {
		t.Errorf("expected johnnyappleseed to be available")
	}
}

func TestRegistry_Reserve(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	if err := r.Reserve(ctx, "Kyuhyun"); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if err := r.Reserve(ctx, "kyuhyun"); !errors.Is(err, storage.ErrNameTaken) {
		t.Errorf("expected ErrNameTaken, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 name, got %d", r.Len())
	}
}

func TestRegistry_ConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Reserve(ctx, "contested"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected exactly one successful reservation, got %d", wins)
	}
}
