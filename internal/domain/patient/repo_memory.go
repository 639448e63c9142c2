package patient

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// memoryRepo keeps patients in insertion order. The mutex only protects the
// slice and index; callers doing read-modify-write still race (last write wins).
type memoryRepo struct {
	mu       sync.RWMutex
	patients []*Patient
	index    map[uuid.UUID]int
}

func NewMemoryRepo() Repository {
	return &memoryRepo{index: make(map[uuid.UUID]int)}
}

func (r *memoryRepo) Get(_ context.Context, id uuid.UUID) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("patient get %s: %w", id, ErrNotFound)
	}
	return r.patients[i].clone(), nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p.clone())
	}
	return out, nil
}

func (r *memoryRepo) Append(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[p.ID]; exists {
		return fmt.Errorf("patient append: id %s already exists", p.ID)
	}
	r.index[p.ID] = len(r.patients)
	r.patients = append(r.patients, p.clone())
	return nil
}

func (r *memoryRepo) Replace(_ context.Context, id uuid.UUID, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("patient replace %s: %w", id, ErrNotFound)
	}
	if p.ID != id {
		return fmt.Errorf("patient replace %s: record carries id %s", id, p.ID)
	}
	r.patients[i] = p.clone()
	return nil
}
