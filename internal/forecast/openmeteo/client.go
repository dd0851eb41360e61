// Package openmeteo provides clients for the Open-Meteo air-quality and
// weather forecast APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/breathesafe/breathesafe/internal/forecast"
	"github.com/breathesafe/breathesafe/internal/provider/resilience"
)

const (
	// ProviderName identifies this forecast provider.
	ProviderName = "open-meteo"

	// DefaultAirQualityURL is the Open-Meteo air-quality API base URL.
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com"

	// DefaultWeatherURL is the Open-Meteo weather forecast API base URL.
	DefaultWeatherURL = "https://api.open-meteo.com"

	// hourlyTimeLayout is the local-time format Open-Meteo uses with
	// timezone=auto.
	hourlyTimeLayout = "2006-01-02T15:04"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Open-Meteo forecast client.
type ClientConfig struct {
	// AirQualityURL is the air-quality API base URL (defaults to DefaultAirQualityURL).
	AirQualityURL string

	// WeatherURL is the weather API base URL (defaults to DefaultWeatherURL).
	WeatherURL string

	// HTTPClient is the HTTP client to use.
	// If nil, a default resilient client is created.
	HTTPClient HTTPDoer
}

// Client fetches hourly AQI and temperature series from Open-Meteo.
type Client struct {
	airQualityURL string
	weatherURL    string
	httpClient    HTTPDoer
}

// NewClient creates a new Open-Meteo forecast client.
func NewClient(cfg ClientConfig) *Client {
	airQualityURL := cfg.AirQualityURL
	if airQualityURL == "" {
		airQualityURL = DefaultAirQualityURL
	}

	weatherURL := cfg.WeatherURL
	if weatherURL == "" {
		weatherURL = DefaultWeatherURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		airQualityURL: strings.TrimSuffix(airQualityURL, "/"),
		weatherURL:    strings.TrimSuffix(weatherURL, "/"),
		httpClient:    httpClient,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

type airQualityResponse struct {
	Hourly struct {
		Time            []string   `json:"time"`
		USAQI           []*float64 `json:"us_aqi"`
		PM25            []*float64 `json:"pm2_5"`
		PM10            []*float64 `json:"pm10"`
		CarbonMonoxide  []*float64 `json:"carbon_monoxide"`
		NitrogenDioxide []*float64 `json:"nitrogen_dioxide"`
		SulphurDioxide  []*float64 `json:"sulphur_dioxide"`
		Ozone           []*float64 `json:"ozone"`
	} `json:"hourly"`
}

type weatherResponse struct {
	Hourly struct {
		Time          []string   `json:"time"`
		Temperature2M []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

// AirQuality fetches the hourly AQI and pollutant series for coordinates.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (*forecast.AirSeries, error) {
	url := fmt.Sprintf("%s/v1/air-quality?latitude=%.6f&longitude=%.6f"+
		"&hourly=us_aqi,pm2_5,pm10,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone"+
		"&timezone=auto", c.airQualityURL, lat, lon)

	var aqResp airQualityResponse
	if err := c.getJSON(ctx, url, &aqResp); err != nil {
		return nil, err
	}

	series := &forecast.AirSeries{
		Times: make([]time.Time, 0, len(aqResp.Hourly.Time)),
		AQI:   values(aqResp.Hourly.USAQI),
		PM25:  values(aqResp.Hourly.PM25),
		PM10:  values(aqResp.Hourly.PM10),
		CO:    values(aqResp.Hourly.CarbonMonoxide),
		NO2:   values(aqResp.Hourly.NitrogenDioxide),
		SO2:   values(aqResp.Hourly.SulphurDioxide),
		O3:    values(aqResp.Hourly.Ozone),
	}

	for _, ts := range aqResp.Hourly.Time {
		t, err := time.ParseInLocation(hourlyTimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing forecast time %q: %w", ts, err)
		}
		series.Times = append(series.Times, t)
	}

	return series, nil
}

// Temperature fetches the hourly temperature series for coordinates.
func (c *Client) Temperature(ctx context.Context, lat, lon float64) (*forecast.TemperatureSeries, error) {
	url := fmt.Sprintf("%s/v1/forecast?latitude=%.6f&longitude=%.6f&hourly=temperature_2m&timezone=auto",
		c.weatherURL, lat, lon)

	var wResp weatherResponse
	if err := c.getJSON(ctx, url, &wResp); err != nil {
		return nil, err
	}

	series := &forecast.TemperatureSeries{
		Times:  make([]time.Time, 0, len(wResp.Hourly.Time)),
		Values: values(wResp.Hourly.Temperature2M),
	}

	for _, ts := range wResp.Hourly.Time {
		t, err := time.ParseInLocation(hourlyTimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing forecast time %q: %w", ts, err)
		}
		series.Times = append(series.Times, t)
	}

	return series, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// values flattens a nullable series; hours the provider has no data for
// come back as null and are treated as zero, which never trips a threshold.
func values(in []*float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}
