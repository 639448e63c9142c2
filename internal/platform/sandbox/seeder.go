// Package sandbox loads the bundled demo patients and the diagnosis reference
// set into the stores, so a fresh server has something to show.
package sandbox

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ehr/patientor/internal/domain/diagnosis"
	"github.com/ehr/patientor/internal/domain/patient"
)

//go:embed data/*.json
var dataFS embed.FS

// SeedResult counts what a Seed call wrote.
type SeedResult struct {
	Patients  int `json:"patients"`
	Skipped   int `json:"skipped"`
	Diagnoses int `json:"diagnoses"`
}

type Seeder struct {
	patients  patient.Repository
	diagnoses diagnosis.Repository
	logger    zerolog.Logger
}

func NewSeeder(patients patient.Repository, diagnoses diagnosis.Repository, logger zerolog.Logger) *Seeder {
	return &Seeder{patients: patients, diagnoses: diagnoses, logger: logger}
}

// Seed writes every diagnosis and any demo patient not already stored.
// Running it twice leaves the stores unchanged.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult

	diagnoses, err := Diagnoses()
	if err != nil {
		return res, err
	}
	for _, d := range diagnoses {
		if err := s.diagnoses.Upsert(ctx, d); err != nil {
			return res, fmt.Errorf("seed diagnosis %s: %w", d.Code, err)
		}
		res.Diagnoses++
	}

	patients, err := Patients()
	if err != nil {
		return res, err
	}
	for _, p := range patients {
		_, err := s.patients.Get(ctx, p.ID)
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, patient.ErrNotFound) {
			return res, fmt.Errorf("seed patient %s: %w", p.ID, err)
		}
		if err := s.patients.Append(ctx, p); err != nil {
			return res, fmt.Errorf("seed patient %s: %w", p.ID, err)
		}
		res.Patients++
	}

	s.logger.Info().
		Int("patients", res.Patients).
		Int("skipped", res.Skipped).
		Int("diagnoses", res.Diagnoses).
		Msg("demo data seeded")
	return res, nil
}

// Patients decodes the bundled demo patients.
func Patients() ([]*patient.Patient, error) {
	var patients []*patient.Patient
	if err := readJSON("data/patients.json", &patients); err != nil {
		return nil, err
	}
	for _, p := range patients {
		if !p.Gender.Valid() {
			return nil, fmt.Errorf("demo patient %s: invalid gender %q", p.ID, p.Gender)
		}
		if p.Entries == nil {
			p.Entries = patient.Entries{}
		}
	}
	return patients, nil
}

// Diagnoses decodes the bundled diagnosis reference set.
func Diagnoses() ([]*diagnosis.Diagnosis, error) {
	var diagnoses []*diagnosis.Diagnosis
	if err := readJSON("data/diagnoses.json", &diagnoses); err != nil {
		return nil, err
	}
	return diagnoses, nil
}

func readJSON(name string, v any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
