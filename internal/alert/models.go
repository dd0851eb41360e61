// Package alert persists the audit trail of dispatched air-quality alerts.
//
// An alert row is written before the SMS goes out and flipped to sent
// afterwards, so a crash between the two leaves a visible unsent record
// instead of a silently lost message.
package alert

import (
	"time"

	"github.com/google/uuid"
)

// PollutantSnapshot holds the rounded pollutant readings for the
// forecast hour that triggered an alert.
type PollutantSnapshot struct {
	PM25 int
	PM10 int
	CO   int
	NO2  int
	SO2  int
	O3   int
}

// Alert is one triggered alert for one user and forecast hour.
type Alert struct {
	// ID is the unique alert identifier (format: alr_XXXX).
	ID string

	// UserID is the alerted user.
	UserID string

	// Location is the user's location text at dispatch time.
	Location string

	// AQI is the rounded forecast US AQI that crossed the threshold.
	AQI int

	// Pollutants are the rounded readings for the forecast hour.
	Pollutants PollutantSnapshot

	// ForecastAt is the forecast hour the alert is about.
	ForecastAt time.Time

	// SMSSent reports whether delivery was confirmed.
	SMSSent bool

	// SMSSentAt is when delivery was confirmed, nil while unsent.
	SMSSentAt *time.Time

	// CreatedAt is when the record was stored.
	CreatedAt time.Time
}

// NewID returns a fresh alert identifier.
func NewID() string {
	return "alr_" + uuid.New().String()[:22]
}
