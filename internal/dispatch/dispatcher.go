// Package dispatch runs the daily alert batch: for every eligible user,
// resolve their location, fetch the hourly forecast, and send an SMS for
// each forecast hour whose AQI breaches the alert threshold.
package dispatch

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/breathesafe/breathesafe/internal/alert"
	"github.com/breathesafe/breathesafe/internal/events"
	"github.com/breathesafe/breathesafe/internal/forecast"
	"github.com/breathesafe/breathesafe/internal/geocode"
	"github.com/breathesafe/breathesafe/internal/health"
	"github.com/breathesafe/breathesafe/internal/notify"
	"github.com/breathesafe/breathesafe/internal/risk"
	"github.com/breathesafe/breathesafe/internal/user"
)

// DefaultThreshold is the AQI trigger carried over from the original
// rollout. It sits below the risk engine's own 150/200/300 breakpoints;
// treat it as an operational knob, not a health constant.
const DefaultThreshold = 88

// DefaultWindowHours is how many forecast hours one run scans per user.
const DefaultWindowHours = 24

// UserDirectory lists users eligible for SMS alerts.
type UserDirectory interface {
	ListAlertable(ctx context.Context) ([]*user.User, error)
}

// LocationResolver turns free-text locations into coordinates.
type LocationResolver interface {
	Resolve(ctx context.Context, locationText string) (*geocode.Location, error)
}

// ForecastFetcher fetches the hourly forecast for coordinates.
type ForecastFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*forecast.Forecast, error)
}

// ProfileSource returns the risk profile for a user, falling back to
// defaults when no assessment exists.
type ProfileSource interface {
	ProfileFor(ctx context.Context, userID string) (health.RiskProfile, error)
}

// EventPublisher emits delivery-confirmed alert events.
type EventPublisher interface {
	AlertDispatched(ctx context.Context, evt events.AlertDispatched) error
}

// Config holds dispatcher configuration.
type Config struct {
	// Threshold is the AQI trigger; a forecast hour alerts when its
	// rounded AQI is strictly greater. Defaults to DefaultThreshold.
	Threshold float64

	// WindowHours bounds the per-user scan. Defaults to DefaultWindowHours.
	WindowHours int

	// Logger for dispatch operations.
	Logger zerolog.Logger

	// Now overrides the clock for tests.
	Now func() time.Time
}

// Dispatcher runs the alert batch.
type Dispatcher struct {
	users     UserDirectory
	locations LocationResolver
	forecasts ForecastFetcher
	profiles  ProfileSource
	alerts    alert.Repository
	sender    notify.Sender
	events    EventPublisher

	threshold float64
	window    int
	logger    zerolog.Logger
	now       func() time.Time

	alertsSent metric.Int64Counter
}

// Deps bundles the dispatcher's collaborators.
type Deps struct {
	Users     UserDirectory
	Locations LocationResolver
	Forecasts ForecastFetcher
	Profiles  ProfileSource
	Alerts    alert.Repository
	Sender    notify.Sender

	// Events is optional; nil disables event publishing.
	Events EventPublisher
}

// New creates a dispatcher.
func New(deps Deps, cfg Config) *Dispatcher {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	window := cfg.WindowHours
	if window <= 0 {
		window = DefaultWindowHours
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	meter := otel.Meter("breathesafe/dispatch")
	alertsSent, _ := meter.Int64Counter("alerts_sent_total",
		metric.WithDescription("SMS alerts with confirmed delivery"))

	return &Dispatcher{
		users:      deps.Users,
		locations:  deps.Locations,
		forecasts:  deps.Forecasts,
		profiles:   deps.Profiles,
		alerts:     deps.Alerts,
		sender:     deps.Sender,
		events:     deps.Events,
		threshold:  threshold,
		window:     window,
		logger:     cfg.Logger,
		now:        now,
		alertsSent: alertsSent,
	}
}

// UserResult is the outcome of one user's pipeline.
type UserResult struct {
	UserID     string
	Location   string
	AlertsSent int
	Err        error
}

// RunResult summarizes one batch run.
type RunResult struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	Users       int
	UsersFailed int
	AlertsSent  int
	Results     []UserResult
}

// Run executes one alert batch. Users are processed strictly
// sequentially and every per-user failure is contained: one user's
// geocoding or provider outage never aborts the rest of the batch.
func (d *Dispatcher) Run(ctx context.Context) *RunResult {
	start := d.now()
	result := &RunResult{StartTime: start}

	d.logger.Info().Msg("starting alert dispatch run")

	users, err := d.users.ListAlertable(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("listing alertable users failed")
		result.EndTime = d.now()
		result.Duration = result.EndTime.Sub(start)
		return result
	}
	result.Users = len(users)

	for _, u := range users {
		if ctx.Err() != nil {
			break
		}

		ur := d.processUser(ctx, u)
		result.Results = append(result.Results, ur)
		result.AlertsSent += ur.AlertsSent

		if ur.Err != nil {
			result.UsersFailed++
			d.logger.Error().
				Err(ur.Err).
				Str("user_id", u.ID).
				Str("location", u.Location).
				Msg("user alert pipeline failed")
		}
	}

	result.EndTime = d.now()
	result.Duration = result.EndTime.Sub(start)

	d.logger.Info().
		Dur("duration", result.Duration).
		Int("users", result.Users).
		Int("users_failed", result.UsersFailed).
		Int("alerts_sent", result.AlertsSent).
		Msg("alert dispatch run completed")

	return result
}

// processUser runs the full pipeline for one user.
func (d *Dispatcher) processUser(ctx context.Context, u *user.User) UserResult {
	ur := UserResult{UserID: u.ID, Location: u.Location}

	logger := d.logger.With().Str("user_id", u.ID).Logger()

	loc, err := d.locations.Resolve(ctx, u.Location)
	if err != nil {
		ur.Err = err
		return ur
	}

	fc, err := d.forecasts.Fetch(ctx, loc.Lat, loc.Lon)
	if err != nil {
		ur.Err = err
		return ur
	}

	// A missing assessment yields defaults; only store errors are logged,
	// and even those never suppress the safety alert.
	profile, err := d.profiles.ProfileFor(ctx, u.ID)
	if err != nil {
		logger.Warn().Err(err).Msg("health profile lookup failed, using defaults")
		profile = health.DefaultRiskProfile()
	}

	start := d.startIndex(fc.Hourly)
	end := start + d.window
	if end > len(fc.Hourly) {
		end = len(fc.Hourly)
	}

	for i := start; i < end; i++ {
		pt := fc.Hourly[i]
		aqi := int(math.Round(pt.AQI))
		if float64(aqi) <= d.threshold {
			continue
		}

		if d.dispatchAlert(ctx, u, profile, pt, aqi) {
			ur.AlertsSent++
		}
	}

	if ur.AlertsSent == 0 {
		logger.Debug().Msg("no alerts needed for user")
	}
	return ur
}

// startIndex locates the forecast hour matching the current wall-clock
// hour on the current day. Forecasts that start later fall back to 0.
func (d *Dispatcher) startIndex(hourly []forecast.HourlyPoint) int {
	now := d.now()
	for i, pt := range hourly {
		t := pt.Time
		if t.Day() == now.Day() && t.Month() == now.Month() && t.Hour() == now.Hour() {
			return i
		}
	}
	return 0
}

// dispatchAlert persists, sends, and confirms one alert. The record is
// written unsent before delivery so a crash or provider rejection leaves
// an auditable attempt instead of a silently lost message. Returns true
// only when delivery was confirmed.
func (d *Dispatcher) dispatchAlert(ctx context.Context, u *user.User, profile health.RiskProfile, pt forecast.HourlyPoint, aqi int) bool {
	logger := d.logger.With().
		Str("user_id", u.ID).
		Time("forecast_at", pt.Time).
		Int("aqi", aqi).
		Logger()

	rec := risk.RecommendMask(float64(aqi), profile.Symptoms, profile.Conditions, profile.Age, pt.Temperature)

	snapshot := alert.PollutantSnapshot{
		PM25: int(math.Round(pt.Pollutants.PM25)),
		PM10: int(math.Round(pt.Pollutants.PM10)),
		CO:   int(math.Round(pt.Pollutants.CO)),
		NO2:  int(math.Round(pt.Pollutants.NO2)),
		SO2:  int(math.Round(pt.Pollutants.SO2)),
		O3:   int(math.Round(pt.Pollutants.O3)),
	}

	body := notify.Compose(notify.AlertContent{
		Location:       u.Location,
		ForecastAt:     pt.Time,
		AQI:            aqi,
		PM25:           snapshot.PM25,
		Temperature:    pt.Temperature,
		Recommendation: rec,
	})

	record := &alert.Alert{
		ID:         alert.NewID(),
		UserID:     u.ID,
		Location:   u.Location,
		AQI:        aqi,
		Pollutants: snapshot,
		ForecastAt: pt.Time,
		CreatedAt:  d.now(),
	}

	// Persistence is best-effort: an unreachable store is logged, not fatal.
	persisted := true
	if err := d.alerts.Create(ctx, record); err != nil {
		persisted = false
		logger.Error().Err(err).Msg("storing alert record failed")
	}

	if err := d.sender.Send(ctx, u.Phone, body); err != nil {
		logger.Error().Err(err).Msg("sms delivery failed")
		return false
	}

	sentAt := d.now()
	if persisted {
		if err := d.alerts.MarkSent(ctx, u.ID, pt.Time, sentAt); err != nil {
			logger.Error().Err(err).Msg("marking alert sent failed")
		}
	}

	d.alertsSent.Add(ctx, 1)
	logger.Info().Str("mask_status", rec.Status.String()).Msg("alert sms sent")

	if d.events != nil {
		evt := events.AlertDispatched{
			AlertID:    record.ID,
			UserID:     u.ID,
			Location:   u.Location,
			AQI:        aqi,
			ForecastAt: pt.Time,
			SentAt:     sentAt,
		}
		if err := d.events.AlertDispatched(ctx, evt); err != nil {
			logger.Warn().Err(err).Msg("publishing alert event failed")
		}
	}

	return true
}
