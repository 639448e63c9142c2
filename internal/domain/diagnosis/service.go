package diagnosis

import (
	"context"
	"fmt"
	"strings"
)

// Service provides read access to diagnosis reference data.
type Service struct {
	repo Repository
}

// NewService creates a new diagnosis service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every diagnosis ordered by code.
func (s *Service) List(ctx context.Context) ([]*Diagnosis, error) {
	return s.repo.List(ctx)
}

// Get looks up a single diagnosis.
func (s *Service) Get(ctx context.Context, code string) (*Diagnosis, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	return s.repo.GetByCode(ctx, code)
}
