package diagnosis

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memoryRepo struct {
	mu    sync.RWMutex
	codes map[string]Diagnosis
}

func NewMemoryRepo() Repository {
	return &memoryRepo{codes: make(map[string]Diagnosis)}
}

func (r *memoryRepo) List(_ context.Context) ([]*Diagnosis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Diagnosis, 0, len(r.codes))
	for _, d := range r.codes {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memoryRepo) GetByCode(_ context.Context, code string) (*Diagnosis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codes[code]
	if !ok {
		return nil, fmt.Errorf("diagnosis get %q: %w", code, ErrNotFound)
	}
	return &d, nil
}

func (r *memoryRepo) Upsert(_ context.Context, d *Diagnosis) error {
	if d.Code == "" {
		return fmt.Errorf("diagnosis upsert: code is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[d.Code] = *d
	return nil
}
