package patient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned by a Repository when no patient has the given id.
var ErrNotFound = errors.New("patient not found")

// ValidationKind classifies why a payload was rejected.
type ValidationKind string

const (
	KindMalformed          ValidationKind = "malformed"
	KindMissingFields      ValidationKind = "missing_fields"
	KindIncorrectField     ValidationKind = "incorrect_field"
	KindIncorrectDate      ValidationKind = "incorrect_date"
	KindIncorrectGender    ValidationKind = "incorrect_gender"
	KindIncorrectRating    ValidationKind = "incorrect_rating"
	KindIncorrectSickLeave ValidationKind = "incorrect_sick_leave"
	KindIncorrectDischarge ValidationKind = "incorrect_discharge"
	KindIncorrectEntries   ValidationKind = "incorrect_entries"
)

// ValidationError is the single error type produced by the normalizers.
// Field is empty for errors that are not about one field.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Value any
	msg   string
}

func (e *ValidationError) Error() string { return e.msg }

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func errMalformed() error {
	return &ValidationError{Kind: KindMalformed, msg: "Incorrect or missing data"}
}

func errMissingFields() error {
	return &ValidationError{Kind: KindMissingFields, msg: "Incorrect data: some fields are missing"}
}

func errIncorrect(kind ValidationKind, label, field string, value any) error {
	return &ValidationError{
		Kind:  kind,
		Field: field,
		Value: value,
		msg:   fmt.Sprintf("Incorrect %s: %s", label, describe(value)),
	}
}

// describe renders a decoded JSON value for an error message.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
