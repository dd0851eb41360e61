package alert

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL alert repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create stores a new alert record.
func (r *PostgresRepository) Create(ctx context.Context, a *Alert) error {
	query := `
		INSERT INTO alerts (
			alert_id, user_id, location, aqi,
			pm25, pm10, co, no2, so2, o3,
			forecast_at, sms_sent, sms_sent_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Location,
		a.AQI,
		a.Pollutants.PM25,
		a.Pollutants.PM10,
		a.Pollutants.CO,
		a.Pollutants.NO2,
		a.Pollutants.SO2,
		a.Pollutants.O3,
		a.ForecastAt,
		a.SMSSent,
		a.SMSSentAt,
		a.CreatedAt,
	)
	return err
}

// MarkSent flips the alert for (userID, forecastAt) to sent.
func (r *PostgresRepository) MarkSent(ctx context.Context, userID string, forecastAt time.Time, sentAt time.Time) error {
	query := `
		UPDATE alerts SET sms_sent = TRUE, sms_sent_at = $3
		WHERE user_id = $1 AND forecast_at = $2
	`

	result, err := r.pool.Exec(ctx, query, userID, forecastAt, sentAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAlertNotFound
	}
	return nil
}

// ListByUser returns a user's alerts, newest forecast hour first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*Alert, error) {
	query := `
		SELECT
			alert_id, user_id, location, aqi,
			pm25, pm10, co, no2, so2, o3,
			forecast_at, sms_sent, sms_sent_at, created_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY forecast_at DESC
		LIMIT $2
	`

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAlert(row pgx.Row) (*Alert, error) {
	var a Alert
	err := row.Scan(
		&a.ID, &a.UserID, &a.Location, &a.AQI,
		&a.Pollutants.PM25, &a.Pollutants.PM10, &a.Pollutants.CO,
		&a.Pollutants.NO2, &a.Pollutants.SO2, &a.Pollutants.O3,
		&a.ForecastAt, &a.SMSSent, &a.SMSSentAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
