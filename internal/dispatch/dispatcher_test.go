package dispatch_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breathesafe/breathesafe/internal/alert"
	"github.com/breathesafe/breathesafe/internal/dispatch"
	"github.com/breathesafe/breathesafe/internal/forecast"
	"github.com/breathesafe/breathesafe/internal/geocode"
	"github.com/breathesafe/breathesafe/internal/health"
	"github.com/breathesafe/breathesafe/internal/user"
)

var testNow = time.Date(2026, time.June, 3, 11, 2, 0, 0, time.UTC)

type fakeDirectory struct {
	users []*user.User
	err   error
}

func (f *fakeDirectory) ListAlertable(context.Context) ([]*user.User, error) {
	return f.users, f.err
}

type fakeResolver struct {
	failFor map[string]error
}

func (f *fakeResolver) Resolve(_ context.Context, locationText string) (*geocode.Location, error) {
	if err, ok := f.failFor[locationText]; ok {
		return nil, err
	}
	return &geocode.Location{Name: locationText, Lat: 28.6, Lon: 77.2}, nil
}

type fakeFetcher struct {
	forecast *forecast.Forecast
	err      error
}

func (f *fakeFetcher) Fetch(context.Context, float64, float64) (*forecast.Forecast, error) {
	return f.forecast, f.err
}

type fakeProfiles struct {
	profiles map[string]health.RiskProfile
	err      error
}

func (f *fakeProfiles) ProfileFor(_ context.Context, userID string) (health.RiskProfile, error) {
	if f.err != nil {
		return health.RiskProfile{}, f.err
	}
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return health.DefaultRiskProfile(), nil
}

type sentSMS struct {
	to   string
	body string
}

type fakeSender struct {
	sent    []sentSMS
	failFor map[string]error
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentSMS{to: to, body: body})
	return nil
}

func alertableUser(i int, location string) *user.User {
	u := user.NewUser(fmt.Sprintf("User %d", i), fmt.Sprintf("u%d@example.com", i))
	u.Phone = fmt.Sprintf("+91990011%04d", i)
	u.Location = location
	return u
}

// hourlyForecast builds a series starting at testNow's hour with the
// given AQI values, one per hour.
func hourlyForecast(aqis ...float64) *forecast.Forecast {
	base := testNow.Truncate(time.Hour)
	points := make([]forecast.HourlyPoint, len(aqis))
	for i, aqi := range aqis {
		temp := 25.0
		points[i] = forecast.HourlyPoint{
			Time:        base.Add(time.Duration(i) * time.Hour),
			AQI:         aqi,
			Pollutants:  forecast.Pollutants{PM25: aqi / 2, PM10: aqi},
			Temperature: &temp,
		}
	}
	return &forecast.Forecast{Lat: 28.6, Lon: 77.2, Hourly: points, FetchedAt: testNow}
}

func newDispatcher(t *testing.T, deps dispatch.Deps) *dispatch.Dispatcher {
	t.Helper()
	return dispatch.New(deps, dispatch.Config{Now: func() time.Time { return testNow }})
}

func TestDispatcher_PerUserIsolation(t *testing.T) {
	users := []*user.User{
		alertableUser(1, "Delhi"),
		alertableUser(2, "Nowhere Land"),
		alertableUser(3, "Pune"),
	}
	sender := &fakeSender{}
	alerts := alert.NewInMemoryRepository()

	d := newDispatcher(t, dispatch.Deps{
		Users: &fakeDirectory{users: users},
		Locations: &fakeResolver{failFor: map[string]error{
			"Nowhere Land": geocode.ErrLocationNotFound,
		}},
		Forecasts: &fakeFetcher{forecast: hourlyForecast(180)},
		Profiles:  &fakeProfiles{},
		Alerts:    alerts,
		Sender:    sender,
	})

	result := d.Run(context.Background())

	assert.Equal(t, 3, result.Users)
	assert.Equal(t, 1, result.UsersFailed)
	assert.Equal(t, 2, result.AlertsSent)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, users[0].Phone, sender.sent[0].to)
	assert.Equal(t, users[2].Phone, sender.sent[1].to)

	require.Len(t, result.Results, 3)
	assert.ErrorIs(t, result.Results[1].Err, geocode.ErrLocationNotFound)
}

func TestDispatcher_ThresholdBoundary(t *testing.T) {
	sender := &fakeSender{}
	d := newDispatcher(t, dispatch.Deps{
		Users:     &fakeDirectory{users: []*user.User{alertableUser(1, "Delhi")}},
		Locations: &fakeResolver{},
		Forecasts: &fakeFetcher{forecast: hourlyForecast(88, 89, 50)},
		Profiles:  &fakeProfiles{},
		Alerts:    alert.NewInMemoryRepository(),
		Sender:    sender,
	})

	result := d.Run(context.Background())

	// AQI exactly 88 does not trigger; 89 does.
	assert.Equal(t, 1, result.AlertsSent)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].body, "AQI: 89")
}

func TestDispatcher_WindowStartsAtCurrentHour(t *testing.T) {
	// Series starts 3 hours before now; only the breach at the current
	// hour or later may alert.
	base := testNow.Truncate(time.Hour).Add(-3 * time.Hour)
	var points []forecast.HourlyPoint
	for i, aqi := range []float64{300, 300, 300, 120, 50} {
		points = append(points, forecast.HourlyPoint{
			Time: base.Add(time.Duration(i) * time.Hour),
			AQI:  aqi,
		})
	}
	fc := &forecast.Forecast{Hourly: points}

	sender := &fakeSender{}
	d := newDispatcher(t, dispatch.Deps{
		Users:     &fakeDirectory{users: []*user.User{alertableUser(1, "Delhi")}},
		Locations: &fakeResolver{},
		Forecasts: &fakeFetcher{forecast: fc},
		Profiles:  &fakeProfiles{},
		Alerts:    alert.NewInMemoryRepository(),
		Sender:    sender,
	})

	result := d.Run(context.Background())

	require.Equal(t, 1, result.AlertsSent)
	assert.Contains(t, sender.sent[0].body, "AQI: 120")
}

func TestDispatcher_WindowScansAtMost24Hours(t *testing.T) {
	// 30 breaching hours, all from the current hour: only 24 alert.
	aqis := make([]float64, 30)
	for i := range aqis {
		aqis[i] = 200
	}

	sender := &fakeSender{}
	d := newDispatcher(t, dispatch.Deps{
		Users:     &fakeDirectory{users: []*user.User{alertableUser(1, "Delhi")}},
		Locations: &fakeResolver{},
		Forecasts: &fakeFetcher{forecast: hourlyForecast(aqis...)},
		Profiles:  &fakeProfiles{},
		Alerts:    alert.NewInMemoryRepository(),
		Sender:    sender,
	})

	result := d.Run(context.Background())
	assert.Equal(t, 24, result.AlertsSent)
}

func TestDispatcher_DeliveryFailureLeavesUnsentRecord(t *testing.T) {
	u := alertableUser(1, "Delhi")
	alerts := alert.NewInMemoryRepository()
	sender := &fakeSender{failFor: map[string]error{
		u.Phone: errors.New("provider rejected"),
	}}

	d := newDispatcher(t, dispatch.Deps{
		Users:     &fakeDirectory{users: []*user.User{u}},
		Locations: &fakeResolver{},
		Forecasts: &fakeFetcher{forecast: hourlyForecast(180)},
		Profiles:  &fakeProfiles{},
		Alerts:    alerts,
		Sender:    sender,
	})

	result := d.Run(context.Background())

	assert.Equal(t, 0, result.AlertsSent)

	// The attempted record survives, visibly unsent.
	records, err := alerts.ListByUser(context.Background(), u.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].SMSSent)
	assert.Nil(t, records[0].SMSSentAt)
}

func TestDispatcher_EndToEnd(t *testing.T) {
	u := alertableUser(1, "Delhi")
	alerts := alert.NewInMemoryRepository()
	sender := &fakeSender{}

	temp := 32.0
	fc := hourlyForecast(180)
	fc.Hourly[0].Temperature = &temp

	d := newDispatcher(t, dispatch.Deps{
		Users:     &fakeDirectory{users: []*user.User{u}},
		Locations: &fakeResolver{},
		Forecasts: &fakeFetcher{forecast: fc},
		Profiles: &fakeProfiles{profiles: map[string]health.RiskProfile{
			u.ID: {Age: 45, Symptoms: []string{"Shortness of breath"}, Conditions: []string{"Asthma"}},
		}},
		Alerts: alerts,
		Sender: sender,
	})

	result := d.Run(context.Background())

	require.Equal(t, 1, result.AlertsSent)
	require.Len(t, sender.sent, 1)
	body := sender.sent[0].body
	assert.Contains(t, body, "AQI: 180")
	assert.Contains(t, body, "Mask: strongly recommended")
	assert.LessOrEqual(t, len([]rune(body)), 150)

	records, err := alerts.ListByUser(context.Background(), u.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].SMSSent)
	assert.Equal(t, 180, records[0].AQI)
	assert.Equal(t, 90, records[0].Pollutants.PM25)
}

func TestDispatcher_ProfileErrorFallsBackToDefaults(t *testing.T) {
	u := alertableUser(1, "Delhi")
	sender := &fakeSender{}

	d := newDispatcher(t, dispatch.Deps{
		Users:     &fakeDirectory{users: []*user.User{u}},
		Locations: &fakeResolver{},
		Forecasts: &fakeFetcher{forecast: hourlyForecast(180)},
		Profiles:  &fakeProfiles{err: errors.New("store down")},
		Alerts:    alert.NewInMemoryRepository(),
		Sender:    sender,
	})

	result := d.Run(context.Background())

	// A broken health store must not suppress the safety alert.
	assert.Equal(t, 1, result.AlertsSent)
	assert.Contains(t, sender.sent[0].body, "Mask: recommended")
}

func TestDispatcher_ForecastFailureIsPerUserFatal(t *testing.T) {
	d := newDispatcher(t, dispatch.Deps{
		Users:     &fakeDirectory{users: []*user.User{alertableUser(1, "Delhi")}},
		Locations: &fakeResolver{},
		Forecasts: &fakeFetcher{err: forecast.ErrForecastUnavailable},
		Profiles:  &fakeProfiles{},
		Alerts:    alert.NewInMemoryRepository(),
		Sender:    &fakeSender{},
	})

	result := d.Run(context.Background())
	assert.Equal(t, 1, result.UsersFailed)
	assert.Equal(t, 0, result.AlertsSent)
	assert.ErrorIs(t, result.Results[0].Err, forecast.ErrForecastUnavailable)
}
