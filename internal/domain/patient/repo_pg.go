package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type patientRepoPG struct {
	pool querier
}

// NewPGRepo stores patients in the patients table, entries as a JSONB array.
func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, name, COALESCE(date_of_birth,''), COALESCE(ssn,''), gender, occupation, entries`

func (r *patientRepoPG) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("patient get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("patient get %s: %w", id, err)
	}
	return p, nil
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("patient list: %w", err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("patient list: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *patientRepoPG) Append(ctx context.Context, p *Patient) error {
	entries, err := json.Marshal(p.Entries)
	if err != nil {
		return fmt.Errorf("patient append: encode entries: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO patients (id, name, date_of_birth, ssn, gender, occupation, entries)
		VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), $5, $6, $7)`,
		p.ID, p.Name, p.DateOfBirth, p.SSN, string(p.Gender), p.Occupation, string(entries),
	)
	if err != nil {
		return fmt.Errorf("patient append: %w", err)
	}
	return nil
}

func (r *patientRepoPG) Replace(ctx context.Context, id uuid.UUID, p *Patient) error {
	if p.ID != id {
		return fmt.Errorf("patient replace %s: record carries id %s", id, p.ID)
	}
	entries, err := json.Marshal(p.Entries)
	if err != nil {
		return fmt.Errorf("patient replace: encode entries: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET name = $2, date_of_birth = NULLIF($3,''), ssn = NULLIF($4,''),
		    gender = $5, occupation = $6, entries = $7, updated_at = NOW()
		WHERE id = $1`,
		id, p.Name, p.DateOfBirth, p.SSN, string(p.Gender), p.Occupation, string(entries),
	)
	if err != nil {
		return fmt.Errorf("patient replace %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient replace %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var (
		p       Patient
		gender  string
		entries []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.DateOfBirth, &p.SSN, &gender, &p.Occupation, &entries); err != nil {
		return nil, err
	}
	p.Gender = Gender(gender)
	if len(entries) > 0 {
		if err := json.Unmarshal(entries, &p.Entries); err != nil {
			return nil, fmt.Errorf("decode entries of %s: %w", p.ID, err)
		}
	}
	if p.Entries == nil {
		p.Entries = Entries{}
	}
	return &p, nil
}
