package patient

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestGender_Valid(t *testing.T) {
	for _, g := range AllGenders {
		if !g.Valid() {
			t.Errorf("%s should be valid", g)
		}
	}
	for _, g := range []Gender{"unknown", "Male", "FEMALE", ""} {
		if g.Valid() {
			t.Errorf("%q should be invalid", g)
		}
	}
}

func TestPatient_NonSensitiveDropsSSNAndEntries(t *testing.T) {
	p := &Patient{
		ID:          uuid.New(),
		Name:        "Dana Scully",
		DateOfBirth: "1974-01-05",
		SSN:         "050174-432N",
		Gender:      GenderFemale,
		Occupation:  "Forensic Pathologist",
		Entries:     Entries{sampleEntry(t, EntryTypeHospital)},
	}

	data, err := json.Marshal(p.NonSensitive())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	json.Unmarshal(data, &out)

	for _, key := range []string{"ssn", "entries"} {
		if _, ok := out[key]; ok {
			t.Errorf("non-sensitive view must not contain %q", key)
		}
	}
	for _, key := range []string{"id", "name", "dateOfBirth", "gender", "occupation"} {
		if _, ok := out[key]; !ok {
			t.Errorf("non-sensitive view lacks %q", key)
		}
	}
}

func TestNewPatient_WithID(t *testing.T) {
	np := NewPatient{Name: "Ada", DateOfBirth: "1990-01-01", SSN: "1", Gender: GenderFemale, Occupation: "engineer"}
	id := uuid.New()
	p := np.WithID(id)

	if p.ID != id {
		t.Errorf("expected id %s, got %s", id, p.ID)
	}
	if p.Entries == nil || len(p.Entries) != 0 {
		t.Errorf("expected empty non-nil entries, got %#v", p.Entries)
	}

	data, _ := json.Marshal(p)
	var out map[string]any
	json.Unmarshal(data, &out)
	if entries, ok := out["entries"].([]any); !ok || len(entries) != 0 {
		t.Errorf("expected entries: [], got %v", out["entries"])
	}
}

func TestPatient_WithEntryLeavesReceiverUnchanged(t *testing.T) {
	p := &Patient{ID: uuid.New(), Name: "Hans Gruber", Entries: Entries{sampleEntry(t, EntryTypeHealthCheck)}}
	e := sampleEntry(t, EntryTypeHospital)

	next := p.WithEntry(e)

	if len(p.Entries) != 1 {
		t.Errorf("receiver changed: %d entries", len(p.Entries))
	}
	if len(next.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(next.Entries))
	}
	if next.Entries[1].Base().ID != e.Base().ID {
		t.Error("new entry must be appended last")
	}
}

func TestPatient_JSONRoundTrip(t *testing.T) {
	p := &Patient{
		ID:          uuid.New(),
		Name:        "Matti Luukkainen",
		DateOfBirth: "1971-04-09",
		SSN:         "090471-8890",
		Gender:      GenderMale,
		Occupation:  "Digital evangelist",
		Entries:     Entries{sampleEntry(t, EntryTypeOccupationalHealthcare)},
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Patient
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID != p.ID || out.SSN != p.SSN || out.Gender != p.Gender {
		t.Errorf("round trip mismatch: %+v", out)
	}
	oh, ok := out.Entries[0].(OccupationalHealthcareEntry)
	if !ok {
		t.Fatalf("expected OccupationalHealthcareEntry, got %T", out.Entries[0])
	}
	if oh.SickLeave == nil || oh.SickLeave.EndDate != "2019-08-28" {
		t.Errorf("sick leave lost in round trip: %+v", oh.SickLeave)
	}
}
