package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/mcqdrill/pkg/models"
)

// Default notification settings
const (
	DefaultNotificationStartHour = 4
	DefaultNotificationEndHour   = 18
	DefaultInterval              = time.Hour
)

// DueSource reports the questions due for review
type DueSource interface {
	DueSummary(ctx context.Context, now time.Time) (*models.DueSummary, error)
}

// Notifier delivers a reminder
type Notifier interface {
	Notify(ctx context.Context, summary models.DueSummary) error
}

// Config controls when reminders are checked and sent
type Config struct {
	Interval  time.Duration
	StartHour int // inclusive
	EndHour   int // inclusive
	Location  *time.Location
}

// DefaultConfig returns the default reminder configuration
func DefaultConfig() Config {
	return Config{
		Interval:  DefaultInterval,
		StartHour: DefaultNotificationStartHour,
		EndHour:   DefaultNotificationEndHour,
		Location:  time.Local,
	}
}

// Scheduler periodically checks for due reviews and sends reminders
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    DueSource
	notifier  Notifier
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a new scheduler instance
func New(source DueSource, notifier Notifier, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the scheduler's clock
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Start runs the periodic check in the background. The first check runs immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.cfg.Interval).Do(func() {
		if _, err := s.Check(ctx); err != nil {
			s.logger.Error("reminder check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder check: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started",
		"interval", s.cfg.Interval,
		"start_hour", s.cfg.StartHour,
		"end_hour", s.cfg.EndHour)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Check sends a reminder when the current hour is inside the notification
// window and reviews are due. It reports whether a reminder was sent.
func (s *Scheduler) Check(ctx context.Context) (bool, error) {
	now := s.now()
	hour := now.In(s.cfg.Location).Hour()
	if !InWindow(hour, s.cfg.StartHour, s.cfg.EndHour) {
		s.logger.Debug("outside notification hours, skipping reminder",
			"hour", hour,
			"start_hour", s.cfg.StartHour,
			"end_hour", s.cfg.EndHour)
		return false, nil
	}
	return s.notifyDue(ctx, now)
}

// RunManualCheck sends a reminder for due reviews regardless of the hour
func (s *Scheduler) RunManualCheck(ctx context.Context) (bool, error) {
	return s.notifyDue(ctx, s.now())
}

func (s *Scheduler) notifyDue(ctx context.Context, now time.Time) (bool, error) {
	summary, err := s.source.DueSummary(ctx, now)
	if err != nil {
		return false, fmt.Errorf("failed to get due reviews: %w", err)
	}
	if summary.Total == 0 {
		s.logger.Debug("no reviews due")
		return false, nil
	}
	if err := s.notifier.Notify(ctx, *summary); err != nil {
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}
	return true, nil
}

// InWindow reports whether hour lies in [start, end]. A window with start
// after end wraps past midnight.
func InWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour <= end
	}
	return hour >= start || hour <= end
}
