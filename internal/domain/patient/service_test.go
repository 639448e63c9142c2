package patient

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// -- Mock Patient Repository --

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
	order    []uuid.UUID
	gets     int
	replaces int
	failNext error
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Get(_ context.Context, id uuid.UUID) (*Patient, error) {
	m.gets++
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("mock get: %w", ErrNotFound)
	}
	return p.clone(), nil
}

func (m *mockPatientRepo) List(_ context.Context) ([]*Patient, error) {
	var result []*Patient
	for _, id := range m.order {
		result = append(result, m.patients[id])
	}
	return result, nil
}

func (m *mockPatientRepo) Append(_ context.Context, p *Patient) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.patients[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockPatientRepo) Replace(_ context.Context, id uuid.UUID, p *Patient) error {
	m.replaces++
	if _, ok := m.patients[id]; !ok {
		return ErrNotFound
	}
	m.patients[id] = p
	return nil
}

func newTestService() (*Service, *mockPatientRepo) {
	repo := newMockPatientRepo()
	return NewService(repo), repo
}

func testNewPatient() NewPatient {
	return NewPatient{Name: "Ada", DateOfBirth: "1990-01-01", SSN: "1", Gender: GenderFemale, Occupation: "engineer"}
}

func testNewEntry(t *testing.T) NewEntry {
	t.Helper()
	ne, err := newFixedNormalizer().Entry(map[string]any{
		"description": "check", "specialist": "Dr. X", "type": "HealthCheck", "healthCheckRating": 0.0,
	})
	if err != nil {
		t.Fatalf("normalize entry: %v", err)
	}
	return ne
}

func TestService_AddPatient(t *testing.T) {
	svc, repo := newTestService()

	p, err := svc.AddPatient(context.Background(), testNewPatient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if len(p.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(p.Entries))
	}
	if _, ok := repo.patients[p.ID]; !ok {
		t.Error("expected patient to be stored")
	}
}

func TestService_AddPatient_DistinctIDs(t *testing.T) {
	svc, _ := newTestService()

	seen := map[uuid.UUID]bool{}
	for i := 0; i < 50; i++ {
		p, err := svc.AddPatient(context.Background(), testNewPatient())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestService_AddPatient_StoreError(t *testing.T) {
	svc, repo := newTestService()
	repo.failNext = errors.New("disk on fire")

	if _, err := svc.AddPatient(context.Background(), testNewPatient()); err == nil {
		t.Error("expected store error to propagate")
	}
}

func TestService_ListPatients_NonSensitive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	svc.AddPatient(ctx, testNewPatient())
	svc.AddPatient(ctx, NewPatient{Name: "Bob", Gender: GenderMale, Occupation: "cop"})

	list, err := svc.ListPatients(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(list))
	}
	if list[0].Name != "Ada" || list[1].Name != "Bob" {
		t.Errorf("unexpected order: %s, %s", list[0].Name, list[1].Name)
	}
}

func TestService_AddEntry_AppendsInOrder(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	p, _ := svc.AddPatient(ctx, testNewPatient())

	var ids []uuid.UUID
	for n := 0; n < 3; n++ {
		before, _ := svc.GetPatient(ctx, p.ID)
		updated, err := svc.AddEntry(ctx, p.ID, testNewEntry(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(updated.Entries) != len(before.Entries)+1 {
			t.Fatalf("expected %d entries, got %d", len(before.Entries)+1, len(updated.Entries))
		}
		for i, e := range before.Entries {
			if updated.Entries[i].Base().ID != e.Base().ID {
				t.Errorf("entry %d moved", i)
			}
		}
		added := updated.Entries[len(updated.Entries)-1].Base().ID
		for _, id := range ids {
			if id == added {
				t.Errorf("entry id %s reused", added)
			}
		}
		if added == uuid.Nil {
			t.Error("expected entry id to be assigned")
		}
		ids = append(ids, added)
	}

	stored := repo.patients[p.ID]
	if len(stored.Entries) != 3 {
		t.Errorf("expected 3 stored entries, got %d", len(stored.Entries))
	}
}

func TestService_AddEntry_OneReadOneWrite(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	p, _ := svc.AddPatient(ctx, testNewPatient())

	if _, err := svc.AddEntry(ctx, p.ID, testNewEntry(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gets != 1 || repo.replaces != 1 {
		t.Errorf("expected 1 get and 1 replace, got %d and %d", repo.gets, repo.replaces)
	}
}

func TestService_AddEntry_UnknownPatient(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.AddEntry(context.Background(), uuid.New(), testNewEntry(t))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if repo.replaces != 0 {
		t.Error("expected no write for unknown patient")
	}
}
