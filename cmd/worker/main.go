// Package main provides the entrypoint for the BreatheSafe alert worker.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/breathesafe/breathesafe/internal/alert"
	"github.com/breathesafe/breathesafe/internal/config"
	"github.com/breathesafe/breathesafe/internal/database"
	"github.com/breathesafe/breathesafe/internal/dispatch"
	"github.com/breathesafe/breathesafe/internal/events"
	"github.com/breathesafe/breathesafe/internal/forecast"
	forecastprovider "github.com/breathesafe/breathesafe/internal/forecast/openmeteo"
	"github.com/breathesafe/breathesafe/internal/geocode"
	geocodeprovider "github.com/breathesafe/breathesafe/internal/geocode/openmeteo"
	"github.com/breathesafe/breathesafe/internal/health"
	"github.com/breathesafe/breathesafe/internal/notify/twilio"
	"github.com/breathesafe/breathesafe/internal/telemetry"
	"github.com/breathesafe/breathesafe/internal/user"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "breathesafe-worker"

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting BreatheSafe worker")

	cfg := config.WorkerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Geocoding with optional Redis cache
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := cache.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, geocode caching disabled")
			cache = nil
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("geocode cache enabled")
		}
	}

	geocodeService := geocode.NewService(geocode.ServiceConfig{
		Provider: geocodeprovider.NewClient(geocodeprovider.ClientConfig{}),
		Logger:   log,
		Cache:    cache,
	})

	forecastService := forecast.NewService(forecast.ServiceConfig{
		Provider: forecastprovider.NewClient(forecastprovider.ClientConfig{}),
		Logger:   log,
	})

	if !cfg.Twilio.Configured() {
		log.Fatal().Msg("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER are required")
	}
	sender := twilio.NewClient(twilio.ClientConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
		Logger:     log,
	})

	// Optional Kafka event stream
	var publisher dispatch.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewPublisher(events.PublisherConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			Logger:  log,
		})
		defer func() {
			if closeErr := kafkaPublisher.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close kafka publisher")
			}
		}()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("alert event publishing enabled")
	}

	healthService := health.NewService(health.NewPostgresRepository(pool))

	dispatcher := dispatch.New(dispatch.Deps{
		Users:     user.NewPostgresRepository(pool),
		Locations: geocodeService,
		Forecasts: forecastService,
		Profiles:  healthService,
		Alerts:    alert.NewPostgresRepository(pool),
		Sender:    sender,
		Events:    publisher,
	}, dispatch.Config{
		Threshold:   cfg.Threshold,
		WindowHours: cfg.WindowHours,
		Logger:      log,
	})

	scheduler, err := dispatch.NewScheduler(dispatch.SchedulerConfig{
		Schedule: cfg.Schedule,
		Run: func(ctx context.Context) {
			result := dispatcher.Run(ctx)
			log.Info().
				Int("users", result.Users).
				Int("users_failed", result.UsersFailed).
				Int("alerts_sent", result.AlertsSent).
				Dur("duration", result.Duration).
				Msg("dispatch run finished")
		},
		Logger: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid alert schedule")
	}

	// Optional Pub/Sub job subscription for on-demand runs
	if cfg.PubSubProjectID != "" {
		pubsubHandler, err := dispatch.NewPubSubHandler(ctx, dispatch.PubSubConfig{
			ProjectID:        cfg.PubSubProjectID,
			SubscriptionName: cfg.PubSubSubscription,
			Scheduler:        scheduler,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize pubsub handler")
		}
		defer func() {
			if closeErr := pubsubHandler.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close pubsub client")
			}
		}()

		go func() {
			if err := pubsubHandler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
	}

	// Health endpoint for the runtime platform
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":%q}`, Version)
	})

	healthServer := &http.Server{
		Addr:         ":" + cfg.HealthPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", healthServer.Addr).Msg("health server listening")
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Daily schedule loop
	go func() {
		if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("scheduler stopped")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
