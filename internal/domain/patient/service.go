package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
	newID    func() uuid.UUID
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients, newID: uuid.New}
}

func (s *Service) ListPatients(ctx context.Context) ([]NonSensitivePatient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]NonSensitivePatient, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.NonSensitive())
	}
	return out, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.Get(ctx, id)
}

// AddPatient assigns a fresh id to np and stores it.
func (s *Service) AddPatient(ctx context.Context, np NewPatient) (*Patient, error) {
	p := np.WithID(s.newID())
	if err := s.patients.Append(ctx, p); err != nil {
		return nil, fmt.Errorf("add patient: %w", err)
	}
	return p, nil
}

// AddEntry appends ne under a fresh id to the patient's entries and returns
// the updated record. It reads once and writes once; a concurrent AddEntry
// on the same patient may be lost.
func (s *Service) AddEntry(ctx context.Context, patientID uuid.UUID, ne NewEntry) (*Patient, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	updated := p.WithEntry(ne.WithID(s.newID()))
	if err := s.patients.Replace(ctx, patientID, updated); err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}
	return updated, nil
}
