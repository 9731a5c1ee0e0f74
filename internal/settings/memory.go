package settings

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo. It is used in tests and when no database
// is available.
type MemoryRepo struct {
	mu    sync.Mutex
	items []ItemSetting
	saves int
	err   error
}

// NewMemoryRepo creates a MemoryRepo seeded with items.
func NewMemoryRepo(items ...ItemSetting) *MemoryRepo {
	return &MemoryRepo{items: append([]ItemSetting(nil), items...)}
}

func (r *MemoryRepo) Load(_ context.Context) ([]ItemSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ItemSetting(nil), r.items...), nil
}

func (r *MemoryRepo) Save(_ context.Context, items []ItemSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items[:0], items...)
	r.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (r *MemoryRepo) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// FailWith makes subsequent saves return err. Pass nil to clear.
func (r *MemoryRepo) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}
