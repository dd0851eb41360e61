package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Conditions are stored as JSONB since their shape is nested and only
// ever read back whole.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL assessment repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create stores a new assessment.
func (r *PostgresRepository) Create(ctx context.Context, a *Assessment) error {
	query := `
		INSERT INTO health_assessments (
			assessment_id, user_id, age, conditions, symptoms, other_notes,
			assessed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	conditions, err := json.Marshal(a.Conditions)
	if err != nil {
		return fmt.Errorf("encoding conditions: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Age,
		conditions,
		a.Symptoms,
		a.Other,
		a.AssessedAt,
		a.CreatedAt,
	)
	return err
}

const assessmentColumns = `assessment_id, user_id, age, conditions, symptoms, other_notes, assessed_at, created_at`

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var (
		a          Assessment
		conditions []byte
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Age, &conditions, &a.Symptoms, &a.Other, &a.AssessedAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}

	if len(conditions) > 0 {
		if err := json.Unmarshal(conditions, &a.Conditions); err != nil {
			return nil, fmt.Errorf("decoding conditions: %w", err)
		}
	}
	return &a, nil
}

// LatestByUser returns the user's most recent assessment.
func (r *PostgresRepository) LatestByUser(ctx context.Context, userID string) (*Assessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM health_assessments
		WHERE user_id = $1
		ORDER BY assessed_at DESC
		LIMIT 1
	`
	return scanAssessment(r.pool.QueryRow(ctx, query, userID))
}

// ListByUser returns all of a user's assessments, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Assessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM health_assessments
		WHERE user_id = $1
		ORDER BY assessed_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
