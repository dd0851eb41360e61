package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for forecast data providers.
type Provider interface {
	// AirQuality fetches the hourly AQI and pollutant series.
	AirQuality(ctx context.Context, lat, lon float64) (*AirSeries, error)

	// Temperature fetches the hourly temperature series.
	Temperature(ctx context.Context, lat, lon float64) (*TemperatureSeries, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the forecast service.
type ServiceConfig struct {
	// Provider is the forecast data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service retrieves and shapes hourly forecasts. It does not interpret or
// threshold the data.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new forecast service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Fetch returns the combined hourly forecast for coordinates.
//
// The AQI series is the hard requirement: a missing or empty series yields
// an error wrapping ErrForecastUnavailable. The temperature series is
// independent and best-effort — on failure the forecast degrades to
// "temperature unavailable" rather than failing.
func (s *Service) Fetch(ctx context.Context, lat, lon float64) (*Forecast, error) {
	air, err := s.provider.AirQuality(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("air quality for (%.4f, %.4f): %w: %v", lat, lon, ErrForecastUnavailable, err)
	}
	if air == nil || len(air.AQI) == 0 || len(air.Times) == 0 {
		return nil, fmt.Errorf("empty AQI series for (%.4f, %.4f): %w", lat, lon, ErrForecastUnavailable)
	}

	var temps *TemperatureSeries
	temps, err = s.provider.Temperature(ctx, lat, lon)
	if err != nil {
		s.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("temperature series unavailable, degrading forecast")
		temps = nil
	}

	f := &Forecast{
		Lat:       lat,
		Lon:       lon,
		Hourly:    make([]HourlyPoint, 0, len(air.Times)),
		FetchedAt: time.Now(),
	}

	for i, ts := range air.Times {
		point := HourlyPoint{
			Time: ts,
			AQI:  at(air.AQI, i),
			Pollutants: Pollutants{
				PM25: at(air.PM25, i),
				PM10: at(air.PM10, i),
				CO:   at(air.CO, i),
				NO2:  at(air.NO2, i),
				SO2:  at(air.SO2, i),
				O3:   at(air.O3, i),
			},
		}

		// Both series come from the same hourly grid, so alignment is by index.
		if temps != nil && i < len(temps.Values) {
			v := temps.Values[i]
			point.Temperature = &v
		}

		f.Hourly = append(f.Hourly, point)
	}

	return f, nil
}

func at(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}
