package patient

import (
	"encoding/json"
	"math"
	"time"
)

// Normalizer turns decoded, untyped JSON into typed creation values. Every
// failure is a *ValidationError and the first violation wins.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer returns a Normalizer that stamps entry dates with now. A nil
// now falls back to time.Now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

var defaultNormalizer = NewNormalizer(nil)

// NormalizePatient validates raw as a patient creation payload.
func NormalizePatient(raw any) (NewPatient, error) { return defaultNormalizer.Patient(raw) }

// NormalizeEntry validates raw as an entry creation payload.
func NormalizeEntry(raw any) (NewEntry, error) { return defaultNormalizer.Entry(raw) }

// Patient requires all of name, dateOfBirth, ssn, gender, occupation and
// entries. Entries are decoded as-is without per-field validation.
func (n *Normalizer) Patient(raw any) (NewPatient, error) {
	obj, ok := asFields(raw)
	if !ok {
		return NewPatient{}, errMalformed()
	}
	if !obj.has("name", "dateOfBirth", "ssn", "gender", "occupation", "entries") {
		return NewPatient{}, errMissingFields()
	}

	var (
		np  NewPatient
		err error
	)
	if np.Name, err = parseString(obj["name"], "name", "name"); err != nil {
		return NewPatient{}, err
	}
	if np.DateOfBirth, err = parseDate(obj["dateOfBirth"], "dateOfBirth"); err != nil {
		return NewPatient{}, err
	}
	if np.SSN, err = parseString(obj["ssn"], "ssn", "ssn"); err != nil {
		return NewPatient{}, err
	}
	if np.Gender, err = parseGender(obj["gender"]); err != nil {
		return NewPatient{}, err
	}
	if np.Occupation, err = parseString(obj["occupation"], "occupation", "occupation"); err != nil {
		return NewPatient{}, err
	}
	if np.Entries, err = parseEntries(obj["entries"]); err != nil {
		return NewPatient{}, err
	}
	return np, nil
}

// Entry requires description, specialist and type, then the keys of the
// selected variant. Any client supplied date is ignored: the entry is dated
// with the normalizer's clock.
func (n *Normalizer) Entry(raw any) (NewEntry, error) {
	obj, ok := asFields(raw)
	if !ok {
		return NewEntry{}, errMalformed()
	}
	if !obj.has("description", "specialist", "type") {
		return NewEntry{}, errMissingFields()
	}

	base, err := n.parseBase(obj)
	if err != nil {
		return NewEntry{}, err
	}

	tag, _ := obj["type"].(string)
	var entry Entry
	switch EntryType(tag) {
	case EntryTypeHealthCheck:
		entry, err = parseHealthCheck(obj, base)
	case EntryTypeOccupationalHealthcare:
		entry, err = parseOccupationalHealthcare(obj, base)
	case EntryTypeHospital:
		entry, err = parseHospital(obj, base)
	default:
		return NewEntry{}, errMissingFields()
	}
	if err != nil {
		return NewEntry{}, err
	}
	return NewEntry{entry: entry}, nil
}

func (n *Normalizer) parseBase(obj fields) (BaseEntry, error) {
	var (
		base BaseEntry
		err  error
	)
	base.Date = n.now().Format(time.DateOnly)
	if base.Description, err = parseString(obj["description"], "description", "description"); err != nil {
		return BaseEntry{}, err
	}
	if base.Specialist, err = parseString(obj["specialist"], "specialist", "specialist"); err != nil {
		return BaseEntry{}, err
	}
	if base.DiagnosisCodes, err = parseDiagnosisCodes(obj); err != nil {
		return BaseEntry{}, err
	}
	return base, nil
}

func parseHealthCheck(obj fields, base BaseEntry) (Entry, error) {
	if !obj.has("healthCheckRating") {
		return nil, errMissingFields()
	}
	rating, err := parseRating(obj["healthCheckRating"])
	if err != nil {
		return nil, err
	}
	return HealthCheckEntry{BaseEntry: base, HealthCheckRating: rating}, nil
}

// parseOccupationalHealthcare insists on the sickLeave key even though the
// stored entry treats it as optional. Clients have always had to send it.
func parseOccupationalHealthcare(obj fields, base BaseEntry) (Entry, error) {
	if !obj.has("employerName", "sickLeave") {
		return nil, errMissingFields()
	}
	employer, err := parseString(obj["employerName"], "employer name", "employerName")
	if err != nil {
		return nil, err
	}
	sickLeave, err := parseSickLeave(obj["sickLeave"])
	if err != nil {
		return nil, err
	}
	return OccupationalHealthcareEntry{BaseEntry: base, EmployerName: employer, SickLeave: &sickLeave}, nil
}

func parseHospital(obj fields, base BaseEntry) (Entry, error) {
	if !obj.has("discharge") {
		return nil, errMissingFields()
	}
	discharge, err := parseDischarge(obj["discharge"])
	if err != nil {
		return nil, err
	}
	return HospitalEntry{BaseEntry: base, Discharge: discharge}, nil
}

// -- field parsers --

// fields is a decoded JSON object.
type fields map[string]any

func asFields(raw any) (fields, bool) {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return fields(m), true
}

func (f fields) has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := f[k]; !ok {
			return false
		}
	}
	return true
}

func parseString(v any, label, field string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errIncorrect(KindIncorrectField, label, field, v)
	}
	return s, nil
}

// dateLayouts are the accepted date spellings: a calendar date or a full
// timestamp.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// IsDate reports whether s is a calendar date in one of the accepted layouts.
func IsDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func parseDate(v any, field string) (string, error) {
	s, ok := v.(string)
	if !ok || !IsDate(s) {
		return "", errIncorrect(KindIncorrectDate, "date", field, v)
	}
	return s, nil
}

func parseGender(v any) (Gender, error) {
	s, ok := v.(string)
	if !ok || !Gender(s).Valid() {
		return "", errIncorrect(KindIncorrectGender, "gender", "gender", v)
	}
	return Gender(s), nil
}

func parseRating(v any) (HealthCheckRating, error) {
	num, ok := toFloat(v)
	if !ok || num != math.Trunc(num) || num < float64(HealthCheckRatingHealthy) || num > float64(HealthCheckRatingCriticalRisk) {
		return 0, errIncorrect(KindIncorrectRating, "rating", "healthCheckRating", v)
	}
	return HealthCheckRating(num), nil
}

// toFloat accepts only JSON numbers; numeric strings are not numbers.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

func parseDiagnosisCodes(obj fields) ([]string, error) {
	v, ok := obj["diagnosisCodes"]
	if !ok || v == nil {
		return []string{}, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...), nil
	case []any:
		codes := make([]string, 0, len(list))
		for _, item := range list {
			code, ok := item.(string)
			if !ok {
				return nil, errIncorrect(KindIncorrectField, "diagnosis codes", "diagnosisCodes", v)
			}
			codes = append(codes, code)
		}
		return codes, nil
	}
	return nil, errIncorrect(KindIncorrectField, "diagnosis codes", "diagnosisCodes", v)
}

func parseSickLeave(v any) (SickLeave, error) {
	obj, ok := asFields(v)
	if !ok || !obj.has("startDate", "endDate") {
		return SickLeave{}, errIncorrect(KindIncorrectSickLeave, "sick leave", "sickLeave", v)
	}
	start, err := parseDate(obj["startDate"], "sickLeave.startDate")
	if err != nil {
		return SickLeave{}, err
	}
	end, err := parseDate(obj["endDate"], "sickLeave.endDate")
	if err != nil {
		return SickLeave{}, err
	}
	return SickLeave{StartDate: start, EndDate: end}, nil
}

func parseDischarge(v any) (Discharge, error) {
	obj, ok := asFields(v)
	if !ok || !obj.has("date", "criteria") {
		return Discharge{}, errIncorrect(KindIncorrectDischarge, "discharge", "discharge", v)
	}
	date, err := parseDate(obj["date"], "discharge.date")
	if err != nil {
		return Discharge{}, err
	}
	criteria, err := parseString(obj["criteria"], "criteria", "discharge.criteria")
	if err != nil {
		return Discharge{}, err
	}
	return Discharge{Date: date, Criteria: criteria}, nil
}

// parseEntries trusts the shape of the list and only decodes it.
func parseEntries(v any) (Entries, error) {
	if v == nil {
		return Entries{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errIncorrect(KindIncorrectEntries, "entries", "entries", v)
	}
	var entries Entries
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errIncorrect(KindIncorrectEntries, "entries", "entries", v)
	}
	return entries, nil
}
