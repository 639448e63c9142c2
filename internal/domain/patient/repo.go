package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage collaborator for patient records. It offers no
// isolation between a Get and a later Replace of the same record.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
	Append(ctx context.Context, p *Patient) error
	Replace(ctx context.Context, id uuid.UUID, p *Patient) error
}
