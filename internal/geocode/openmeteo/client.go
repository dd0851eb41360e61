// Package openmeteo provides a client for the Open-Meteo geocoding API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/breathesafe/breathesafe/internal/geocode"
	"github.com/breathesafe/breathesafe/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "open-meteo-geocoding"

	// DefaultBaseURL is the Open-Meteo geocoding API base URL.
	DefaultBaseURL = "https://geocoding-api.open-meteo.com"

	// defaultCount is how many ranked candidates to request.
	defaultCount = 5

	// defaultLanguage fixes result names to English so the best-match
	// comparison against user input is stable.
	defaultLanguage = "en"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the geocoding client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use.
	// If nil, a default resilient client is created.
	HTTPClient HTTPDoer
}

// Client is an Open-Meteo geocoding API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new geocoding client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

type searchResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Search returns up to 5 ranked candidates for a place name.
// An empty slice means the provider knows no such place.
func (c *Client) Search(ctx context.Context, name string) ([]geocode.Candidate, error) {
	reqURL := fmt.Sprintf("%s/v1/search?name=%s&count=%d&language=%s",
		c.baseURL, url.QueryEscape(name), defaultCount, defaultLanguage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	candidates := make([]geocode.Candidate, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		candidates = append(candidates, geocode.Candidate{
			Name:    r.Name,
			Admin1:  r.Admin1,
			Country: r.Country,
			Lat:     r.Latitude,
			Lon:     r.Longitude,
		})
	}

	return candidates, nil
}
