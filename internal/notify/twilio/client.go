// Package twilio sends SMS through the Twilio Programmable Messaging API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/breathesafe/breathesafe/internal/notify"
	"github.com/breathesafe/breathesafe/internal/provider/resilience"
)

const (
	// ProviderName identifies this SMS provider.
	ProviderName = "twilio"

	// DefaultBaseURL is the Twilio REST API base URL.
	DefaultBaseURL = "https://api.twilio.com"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Twilio client.
type ClientConfig struct {
	// AccountSID is the Twilio account SID (required).
	AccountSID string

	// AuthToken is the Twilio auth token (required).
	AuthToken string

	// FromNumber is the sending phone number in E.164 format (required).
	FromNumber string

	// BaseURL is the API base URL (optional, defaults to Twilio API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Twilio Programmable Messaging client.
type Client struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Twilio client.
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
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

type messageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"` // error responses only
	Code    int    `json:"code"`    // error responses only
}

// Send delivers an SMS body to a phone number in E.164 format.
func (c *Client) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: executing request: %w", notify.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	var msgResp messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil && resp.StatusCode < 300 {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: twilio status %d (code %d): %s",
			notify.ErrDeliveryFailed, resp.StatusCode, msgResp.Code, msgResp.Message)
	}

	c.logger.Debug().
		Str("provider", ProviderName).
		Str("message_sid", msgResp.SID).
		Str("status", msgResp.Status).
		Msg("sms accepted")

	return nil
}
