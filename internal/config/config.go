// Package config loads environment-driven configuration for the
// BreatheSafe binaries.
package config

import (
	"os"
	"strconv"
	"strings"
)

// TwilioConfig holds SMS delivery credentials.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Configured reports whether the credentials are complete enough to
// send SMS.
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// JWTConfig holds token signing settings shared by both binaries.
type JWTConfig struct {
	SigningKey string
	Issuer     string
	Audience   string
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	Environment  string
}

// APIConfig configures the HTTP API binary.
type APIConfig struct {
	Port         string
	JWT          JWTConfig
	GeminiAPIKey string
	GeminiModel  string
	Telemetry    TelemetryConfig
}

// WorkerConfig configures the alert batch worker.
type WorkerConfig struct {
	// Schedule is the daily run slot, "HH:MM" local time.
	Schedule string

	// Threshold is the AQI value above which an SMS fires.
	Threshold float64

	// WindowHours bounds the per-user forecast scan.
	WindowHours int

	Twilio TwilioConfig

	// RedisAddr enables the geocoding cache when non-empty.
	RedisAddr string

	// KafkaBrokers enables alert event publishing when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// PubSubProjectID enables the on-demand job subscription when
	// non-empty.
	PubSubProjectID    string
	PubSubSubscription string

	// HealthPort is where the worker's health endpoint listens.
	HealthPort string

	Telemetry TelemetryConfig
}

// APIFromEnv creates an APIConfig from environment variables.
func APIFromEnv() APIConfig {
	return APIConfig{
		Port: getEnvOrDefault("APP_PORT", "8080"),
		JWT: JWTConfig{
			SigningKey: os.Getenv("JWT_SIGNING_KEY"),
			Issuer:     getEnvOrDefault("JWT_ISSUER", "https://api.breathesafe.in"),
			Audience:   getEnvOrDefault("JWT_AUDIENCE", "breathesafe-api"),
		},
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		Telemetry:    telemetryFromEnv(),
	}
}

// WorkerFromEnv creates a WorkerConfig from environment variables.
func WorkerFromEnv() WorkerConfig {
	threshold, err := strconv.ParseFloat(getEnvOrDefault("ALERT_AQI_THRESHOLD", "88"), 64)
	if err != nil || threshold <= 0 {
		threshold = 88
	}

	window, err := strconv.Atoi(getEnvOrDefault("ALERT_WINDOW_HOURS", "24"))
	if err != nil || window <= 0 {
		window = 24
	}

	return WorkerConfig{
		Schedule:           getEnvOrDefault("ALERT_SCHEDULE", "11:02"),
		Threshold:          threshold,
		WindowHours:        window,
		Twilio:             twilioFromEnv(),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:         os.Getenv("KAFKA_ALERT_TOPIC"),
		PubSubProjectID:    os.Getenv("PUBSUB_PROJECT_ID"),
		PubSubSubscription: getEnvOrDefault("PUBSUB_SUBSCRIPTION", "breathesafe-worker-jobs"),
		HealthPort:         getEnvOrDefault("APP_PORT", "8080"),
		Telemetry:          telemetryFromEnv(),
	}
}

func twilioFromEnv() TwilioConfig {
	return TwilioConfig{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func telemetryFromEnv() TelemetryConfig {
	enabled, _ := strconv.ParseBool(getEnvOrDefault("OTEL_ENABLED", "false"))
	return TelemetryConfig{
		Enabled:      enabled,
		OTLPEndpoint: getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Environment:  getEnvOrDefault("APP_ENV", "development"),
	}
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
