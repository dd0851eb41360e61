package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Report content is stored as JSONB: it is written once and read back
// whole, never queried by field.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL report repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create stores a new report.
func (r *PostgresRepository) Create(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO health_reports (
			report_id, user_id, location, aqi, aqi_label, content, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	content, err := json.Marshal(rep.Content)
	if err != nil {
		return fmt.Errorf("encoding report content: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		rep.ID,
		rep.UserID,
		rep.Location,
		rep.AQI,
		rep.AQILabel,
		content,
		rep.CreatedAt,
	)
	return err
}

const reportColumns = `report_id, user_id, location, aqi, aqi_label, content, created_at`

func scanReport(row pgx.Row) (*Report, error) {
	var (
		rep     Report
		content []byte
	)
	err := row.Scan(&rep.ID, &rep.UserID, &rep.Location, &rep.AQI, &rep.AQILabel, &content, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(content, &rep.Content); err != nil {
		return nil, fmt.Errorf("decoding report content: %w", err)
	}
	return &rep, nil
}

// Get retrieves a report by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Report, error) {
	query := `SELECT ` + reportColumns + ` FROM health_reports WHERE report_id = $1`
	return scanReport(r.pool.QueryRow(ctx, query, id))
}

// ListByUser returns a user's reports, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM health_reports
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
