package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSchedule is the daily run time, "HH:MM" in the server's local
// timezone. 11:02 matches the original rollout's cron slot.
const DefaultSchedule = "11:02"

// ParseSchedule validates an "HH:MM" schedule and returns its parts.
func ParseSchedule(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("schedule %q: want HH:MM", s)
	}

	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("schedule %q: bad hour", s)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("schedule %q: bad minute", s)
	}
	return hour, minute, nil
}

// Scheduler fires the dispatcher once a day at a fixed local time.
// Overlap protection is an atomic in-flight guard: a tick (or manual
// trigger) that arrives while a run is in progress is skipped, never
// queued.
type Scheduler struct {
	hour     int
	minute   int
	run      func(context.Context)
	logger   zerolog.Logger
	now      func() time.Time
	inFlight atomic.Bool
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Schedule is "HH:MM" local time, defaulting to DefaultSchedule.
	Schedule string

	// Run is the job to execute (required).
	Run func(context.Context)

	// Logger for scheduler operations.
	Logger zerolog.Logger

	// Now overrides the clock for tests.
	Now func() time.Time
}

// NewScheduler creates a daily scheduler.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = DefaultSchedule
	}

	hour, minute, err := ParseSchedule(schedule)
	if err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		hour:   hour,
		minute: minute,
		run:    cfg.Run,
		logger: cfg.Logger,
		now:    now,
	}, nil
}

// NextTick returns the next scheduled run time strictly after now.
func (s *Scheduler) NextTick(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start blocks, firing the job daily until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().
		Str("schedule", fmt.Sprintf("%02d:%02d", s.hour, s.minute)).
		Msg("alert scheduler started")

	timer := time.NewTimer(time.Until(s.NextTick(s.now())))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("alert scheduler stopping")
			return ctx.Err()
		case <-timer.C:
			s.TriggerNow(ctx)
			timer.Reset(time.Until(s.NextTick(s.now())))
		}
	}
}

// TriggerNow runs the job immediately unless a run is already in
// flight. Returns whether the job ran.
func (s *Scheduler) TriggerNow(ctx context.Context) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Warn().Msg("dispatch run already in flight, skipping")
		return false
	}
	defer s.inFlight.Store(false)

	s.run(ctx)
	return true
}
