package diagnosis

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type diagnosisRepoPG struct{ pool *pgxpool.Pool }

func NewPGRepo(pool *pgxpool.Pool) Repository { return &diagnosisRepoPG{pool: pool} }

func (r *diagnosisRepoPG) List(ctx context.Context) ([]*Diagnosis, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT code, name, COALESCE(latin,'') FROM diagnoses ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("diagnosis list: %w", err)
	}
	defer rows.Close()
	var results []*Diagnosis
	for rows.Next() {
		var d Diagnosis
		if err := rows.Scan(&d.Code, &d.Name, &d.Latin); err != nil {
			return nil, err
		}
		results = append(results, &d)
	}
	return results, rows.Err()
}

func (r *diagnosisRepoPG) GetByCode(ctx context.Context, code string) (*Diagnosis, error) {
	var d Diagnosis
	err := r.pool.QueryRow(ctx,
		`SELECT code, name, COALESCE(latin,'') FROM diagnoses WHERE code = $1`, code).
		Scan(&d.Code, &d.Name, &d.Latin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("diagnosis get %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("diagnosis get: %w", err)
	}
	return &d, nil
}

func (r *diagnosisRepoPG) Upsert(ctx context.Context, d *Diagnosis) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO diagnoses (code, name, latin) VALUES ($1, $2, NULLIF($3,''))
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, latin = EXCLUDED.latin`,
		d.Code, d.Name, d.Latin)
	if err != nil {
		return fmt.Errorf("diagnosis upsert: %w", err)
	}
	return nil
}
