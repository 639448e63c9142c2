package patient

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// EntryType is the discriminant of the Entry union.
type EntryType string

const (
	EntryTypeHealthCheck            EntryType = "HealthCheck"
	EntryTypeOccupationalHealthcare EntryType = "OccupationalHealthcare"
	EntryTypeHospital               EntryType = "Hospital"
)

// AllEntryTypes lists every Entry variant. Any switch over EntryType must
// handle each of them; entry_test.go walks this list to catch a variant that
// was added here but not to the decoders.
var AllEntryTypes = []EntryType{
	EntryTypeHealthCheck,
	EntryTypeOccupationalHealthcare,
	EntryTypeHospital,
}

// HealthCheckRating grades the outcome of a health check.
type HealthCheckRating int

const (
	HealthCheckRatingHealthy HealthCheckRating = iota
	HealthCheckRatingLowRisk
	HealthCheckRatingHighRisk
	HealthCheckRatingCriticalRisk
)

// Valid reports whether r is one of the four defined ratings.
func (r HealthCheckRating) Valid() bool {
	return r >= HealthCheckRatingHealthy && r <= HealthCheckRatingCriticalRisk
}

func (r HealthCheckRating) String() string {
	switch r {
	case HealthCheckRatingHealthy:
		return "Healthy"
	case HealthCheckRatingLowRisk:
		return "LowRisk"
	case HealthCheckRatingHighRisk:
		return "HighRisk"
	case HealthCheckRatingCriticalRisk:
		return "CriticalRisk"
	}
	return fmt.Sprintf("HealthCheckRating(%d)", int(r))
}

// BaseEntry holds the fields shared by every entry variant.
type BaseEntry struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Date           string    `json:"date"`
	Specialist     string    `json:"specialist"`
	DiagnosisCodes []string  `json:"diagnosisCodes,omitempty"`
}

// Entry is one medical event attached to a patient. The set of
// implementations is closed: HealthCheckEntry, OccupationalHealthcareEntry
// and HospitalEntry.
type Entry interface {
	Type() EntryType
	Base() BaseEntry
	withID(id uuid.UUID) Entry
}

type HealthCheckEntry struct {
	BaseEntry
	HealthCheckRating HealthCheckRating `json:"healthCheckRating"`
}

// SickLeave is the optional leave period of an occupational healthcare visit.
type SickLeave struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type OccupationalHealthcareEntry struct {
	BaseEntry
	EmployerName string     `json:"employerName"`
	SickLeave    *SickLeave `json:"sickLeave,omitempty"`
}

// Discharge records when and why a patient left hospital.
type Discharge struct {
	Date     string `json:"date"`
	Criteria string `json:"criteria"`
}

type HospitalEntry struct {
	BaseEntry
	Discharge Discharge `json:"discharge"`
}

func (e HealthCheckEntry) Type() EntryType            { return EntryTypeHealthCheck }
func (e OccupationalHealthcareEntry) Type() EntryType { return EntryTypeOccupationalHealthcare }
func (e HospitalEntry) Type() EntryType               { return EntryTypeHospital }

func (e HealthCheckEntry) Base() BaseEntry            { return e.BaseEntry }
func (e OccupationalHealthcareEntry) Base() BaseEntry { return e.BaseEntry }
func (e HospitalEntry) Base() BaseEntry               { return e.BaseEntry }

func (e HealthCheckEntry) withID(id uuid.UUID) Entry {
	e.ID = id
	return e
}

func (e OccupationalHealthcareEntry) withID(id uuid.UUID) Entry {
	e.ID = id
	if e.SickLeave != nil {
		sl := *e.SickLeave
		e.SickLeave = &sl
	}
	return e
}

func (e HospitalEntry) withID(id uuid.UUID) Entry {
	e.ID = id
	return e
}

func (e HealthCheckEntry) MarshalJSON() ([]byte, error) {
	type plain HealthCheckEntry
	return json.Marshal(struct {
		plain
		Type EntryType `json:"type"`
	}{plain(e), e.Type()})
}

func (e OccupationalHealthcareEntry) MarshalJSON() ([]byte, error) {
	type plain OccupationalHealthcareEntry
	return json.Marshal(struct {
		plain
		Type EntryType `json:"type"`
	}{plain(e), e.Type()})
}

func (e HospitalEntry) MarshalJSON() ([]byte, error) {
	type plain HospitalEntry
	return json.Marshal(struct {
		plain
		Type EntryType `json:"type"`
	}{plain(e), e.Type()})
}

// DecodeEntry decodes a single JSON entry, dispatching on its "type" field.
func DecodeEntry(data []byte) (Entry, error) {
	var probe struct {
		Type EntryType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode entry type: %w", err)
	}

	switch probe.Type {
	case EntryTypeHealthCheck:
		var e HealthCheckEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s entry: %w", probe.Type, err)
		}
		return e, nil
	case EntryTypeOccupationalHealthcare:
		var e OccupationalHealthcareEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s entry: %w", probe.Type, err)
		}
		return e, nil
	case EntryTypeHospital:
		var e HospitalEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s entry: %w", probe.Type, err)
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown entry type %q", probe.Type)
}

// Entries is an ordered list of entries with a discriminant-aware JSON codec.
type Entries []Entry

func (es Entries) MarshalJSON() ([]byte, error) {
	if es == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Entry(es))
}

func (es *Entries) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode entries: %w", err)
	}
	out := make(Entries, 0, len(raw))
	for i, item := range raw {
		e, err := DecodeEntry(item)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, e)
	}
	*es = out
	return nil
}

// NewEntry is an entry that has passed validation but has not been attached
// to a patient, so it carries no id yet.
type NewEntry struct {
	entry Entry
}

// Type returns the variant of the pending entry.
func (ne NewEntry) Type() EntryType { return ne.entry.Type() }

// Entry exposes the pending entry. Its ID is uuid.Nil.
func (ne NewEntry) Entry() Entry { return ne.entry }

// WithID materialises the pending entry under id.
func (ne NewEntry) WithID(id uuid.UUID) Entry { return ne.entry.withID(id) }
