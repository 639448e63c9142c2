package diagnosis

import "context"

// Repository provides access to the diagnosis reference set.
type Repository interface {
	List(ctx context.Context) ([]*Diagnosis, error)
	GetByCode(ctx context.Context, code string) (*Diagnosis, error)
	// Upsert is used by seeding only; the API never writes diagnoses.
	Upsert(ctx context.Context, d *Diagnosis) error
}
