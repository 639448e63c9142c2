package diagnosis

import "errors"

// ErrNotFound is returned when no diagnosis has the requested code.
var ErrNotFound = errors.New("diagnosis not found")

// Diagnosis is read-only reference data keyed by Code. Entries may cite codes
// that are not in the set.
type Diagnosis struct {
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`
	Latin string `db:"latin" json:"latin,omitempty"`
}
