package patient

import (
	"github.com/google/uuid"
)

// Gender is the closed set of genders a patient record may carry.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// AllGenders lists every accepted Gender value.
var AllGenders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of AllGenders. Matching is case-sensitive.
func (g Gender) Valid() bool {
	for _, known := range AllGenders {
		if g == known {
			return true
		}
	}
	return false
}

// Patient is the full patient record, including sensitive fields and entries.
type Patient struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	SSN         string    `json:"ssn,omitempty"`
	Gender      Gender    `json:"gender"`
	Occupation  string    `json:"occupation"`
	Entries     Entries   `json:"entries"`
}

// NonSensitivePatient is the list view of a patient: no ssn, no entries.
type NonSensitivePatient struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	Gender      Gender    `json:"gender"`
	Occupation  string    `json:"occupation"`
}

// NonSensitive projects p onto its list view.
func (p *Patient) NonSensitive() NonSensitivePatient {
	return NonSensitivePatient{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Occupation:  p.Occupation,
	}
}

// WithEntry returns a copy of p with e appended to its entries. p itself is
// left untouched so a stored record is only changed through Replace.
func (p *Patient) WithEntry(e Entry) *Patient {
	next := p.clone()
	next.Entries = append(next.Entries, e)
	return next
}

func (p *Patient) clone() *Patient {
	cp := *p
	cp.Entries = make(Entries, len(p.Entries), len(p.Entries)+1)
	copy(cp.Entries, p.Entries)
	return &cp
}

// NewPatient is a patient that has not been stored yet and so has no id.
type NewPatient struct {
	Name        string
	DateOfBirth string
	SSN         string
	Gender      Gender
	Occupation  string
	Entries     Entries
}

// WithID materialises np as a Patient carrying id.
func (np NewPatient) WithID(id uuid.UUID) *Patient {
	entries := make(Entries, len(np.Entries))
	copy(entries, np.Entries)
	return &Patient{
		ID:          id,
		Name:        np.Name,
		DateOfBirth: np.DateOfBirth,
		SSN:         np.SSN,
		Gender:      np.Gender,
		Occupation:  np.Occupation,
		Entries:     entries,
	}
}
