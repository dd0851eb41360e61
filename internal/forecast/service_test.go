package forecast_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breathesafe/breathesafe/internal/forecast"
)

type fakeProvider struct {
	air     *forecast.AirSeries
	airErr  error
	temp    *forecast.TemperatureSeries
	tempErr error
}

func (f *fakeProvider) AirQuality(context.Context, float64, float64) (*forecast.AirSeries, error) {
	return f.air, f.airErr
}

func (f *fakeProvider) Temperature(context.Context, float64, float64) (*forecast.TemperatureSeries, error) {
	return f.temp, f.tempErr
}

func (f *fakeProvider) Name() string { return "fake" }

func hours(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func TestService_Fetch_CombinesSeries(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	provider := &fakeProvider{
		air: &forecast.AirSeries{
			Times: hours(start, 3),
			AQI:   []float64{95, 160, 210},
			PM25:  []float64{40, 80, 120},
			PM10:  []float64{60, 100, 150},
			CO:    []float64{300, 320, 340},
			NO2:   []float64{20, 25, 30},
			SO2:   []float64{5, 6, 7},
			O3:    []float64{80, 90, 100},
		},
		temp: &forecast.TemperatureSeries{
			Times:  hours(start, 3),
			Values: []float64{28.5, 31.0, 33.5},
		},
	}
	svc := forecast.NewService(forecast.ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	f, err := svc.Fetch(context.Background(), 18.52, 73.86)
	require.NoError(t, err)
	require.Len(t, f.Hourly, 3)

	assert.Equal(t, start, f.Hourly[0].Time)
	assert.Equal(t, 95.0, f.Hourly[0].AQI)
	assert.Equal(t, 40.0, f.Hourly[0].Pollutants.PM25)
	require.NotNil(t, f.Hourly[1].Temperature)
	assert.Equal(t, 31.0, *f.Hourly[1].Temperature)
}

func TestService_Fetch_DegradesWithoutTemperature(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	provider := &fakeProvider{
		air: &forecast.AirSeries{
			Times: hours(start, 2),
			AQI:   []float64{120, 140},
		},
		tempErr: errors.New("weather api down"),
	}
	svc := forecast.NewService(forecast.ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	f, err := svc.Fetch(context.Background(), 18.52, 73.86)
	require.NoError(t, err)
	require.Len(t, f.Hourly, 2)
	assert.Nil(t, f.Hourly[0].Temperature)
	assert.Nil(t, f.Hourly[1].Temperature)
}

func TestService_Fetch_ShortTemperatureSeries(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	provider := &fakeProvider{
		air: &forecast.AirSeries{
			Times: hours(start, 3),
			AQI:   []float64{90, 100, 110},
		},
		temp: &forecast.TemperatureSeries{
			Times:  hours(start, 1),
			Values: []float64{22.0},
		},
	}
	svc := forecast.NewService(forecast.ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	f, err := svc.Fetch(context.Background(), 18.52, 73.86)
	require.NoError(t, err)
	require.NotNil(t, f.Hourly[0].Temperature)
	assert.Nil(t, f.Hourly[1].Temperature)
	assert.Nil(t, f.Hourly[2].Temperature)
}

func TestService_Fetch_AQISeriesRequired(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{"provider error", &fakeProvider{airErr: errors.New("boom")}},
		{"empty series", &fakeProvider{air: &forecast.AirSeries{}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := forecast.NewService(forecast.ServiceConfig{Provider: tc.provider, Logger: zerolog.Nop()})
			_, err := svc.Fetch(context.Background(), 18.52, 73.86)
			require.Error(t, err)
			assert.True(t, errors.Is(err, forecast.ErrForecastUnavailable))
		})
	}
}
