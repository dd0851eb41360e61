// Package forecast provides hourly AQI and temperature forecasts.
package forecast

import (
	"errors"
	"time"
)

// ErrForecastUnavailable is returned when no AQI series exists for the
// requested coordinates. Temperature is best-effort and never causes this.
var ErrForecastUnavailable = errors.New("forecast unavailable")

// Pollutants holds hourly pollutant concentrations in µg/m³
// (CO in the provider's native unit).
type Pollutants struct {
	PM25 float64
	PM10 float64
	CO   float64
	NO2  float64
	SO2  float64
	O3   float64
}

// HourlyPoint is one hour of combined forecast data.
type HourlyPoint struct {
	Time time.Time

	// AQI is the US AQI composite index for this hour.
	AQI float64

	Pollutants Pollutants

	// Temperature is the ambient temperature in °C, nil when the
	// weather series was unavailable or shorter than the AQI series.
	Temperature *float64
}

// Forecast is a time-aligned hourly forecast for one location.
type Forecast struct {
	Lat float64
	Lon float64

	// Hourly covers at least the next 24 hours where the provider has data,
	// in strict chronological order.
	Hourly []HourlyPoint

	FetchedAt time.Time
}

// AirSeries is the raw hourly air-quality series from a provider.
// All slices are index-aligned with Times.
type AirSeries struct {
	Times []time.Time
	AQI   []float64
	PM25  []float64
	PM10  []float64
	CO    []float64
	NO2   []float64
	SO2   []float64
	O3    []float64
}

// TemperatureSeries is the raw hourly temperature series from a provider.
type TemperatureSeries struct {
	Times  []time.Time
	Values []float64
}
