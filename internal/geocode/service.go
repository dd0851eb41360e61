package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Search returns ranked candidates for a place name.
	Search(ctx context.Context, name string) ([]Candidate, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the geocoding data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Cache is an optional Redis client for caching resolutions.
	// Place-name resolutions are stable, so cached entries are long-lived.
	Cache *redis.Client

	// CacheTTL is how long cached resolutions live (default: 7 days).
	CacheTTL time.Duration
}

// Service resolves free-text locations with caching and best-match selection.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewService creates a new geocoding service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 7 * 24 * time.Hour
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cache:    cfg.Cache,
		cacheTTL: cacheTTL,
	}
}

// Resolve turns a free-text location into coordinates and a canonical name.
// Returns an error wrapping ErrLocationNotFound when the provider has no
// candidate; the error names both the original input and the extracted
// search term to aid diagnosis of geocoding misses.
func (s *Service) Resolve(ctx context.Context, locationText string) (*Location, error) {
	term := SearchTerm(locationText)
	if term == "" {
		return nil, fmt.Errorf("empty location %q: %w", locationText, ErrLocationNotFound)
	}

	if loc := s.cacheGet(ctx, term); loc != nil {
		return loc, nil
	}

	candidates, err := s.provider.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", term, err)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no geocoding match for %q (extracted from %q): %w",
			term, locationText, ErrLocationNotFound)
	}

	best := bestMatch(candidates, term)
	loc := &Location{
		Name: best.Name,
		Lat:  best.Lat,
		Lon:  best.Lon,
	}

	s.logger.Debug().
		Str("input", locationText).
		Str("term", term).
		Str("canonical", loc.Name).
		Float64("lat", loc.Lat).
		Float64("lon", loc.Lon).
		Msg("location resolved")

	s.cachePut(ctx, term, loc)

	return loc, nil
}

// bestMatch picks the candidate for a search term. A candidate whose primary
// name equals the term wins over one whose admin region equals it, which in
// turn wins over a country-name match; otherwise the provider's own top
// ranking stands. A user typing "Springfield" should get the city named
// Springfield, not a region that happens to share the name — but some input
// is itself a region or country name.
func bestMatch(candidates []Candidate, term string) Candidate {
	for _, match := range []func(Candidate) string{
		func(c Candidate) string { return c.Name },
		func(c Candidate) string { return c.Admin1 },
		func(c Candidate) string { return c.Country },
	} {
		for _, c := range candidates {
			if strings.EqualFold(match(c), term) {
				return c
			}
		}
	}
	return candidates[0]
}

func (s *Service) cacheKey(term string) string {
	return "geocode:" + strings.ToLower(term)
}

func (s *Service) cacheGet(ctx context.Context, term string) *Location {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, s.cacheKey(term)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("term", term).Msg("geocode cache read failed")
		}
		return nil
	}

	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil
	}
	return &loc
}

func (s *Service) cachePut(ctx context.Context, term string, loc *Location) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, s.cacheKey(term), data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("term", term).Msg("geocode cache write failed")
	}
}
