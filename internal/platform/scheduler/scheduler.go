package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPurgeSchedule runs the session purge every fifteen minutes.
const DefaultPurgeSchedule = "*/15 * * * *"

// Purger removes expired exercise sessions and reports how many were dropped.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler runs the session purge on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	purger   Purger
	logger   *slog.Logger
	timeout  time.Duration
}

// New builds a scheduler for the given standard five-field cron expression.
func New(schedule string, purger Purger, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(schedule) == "" {
		schedule = DefaultPurgeSchedule
	}
	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		purger:   purger,
		logger:   logger,
		timeout:  time.Minute,
	}
}

// Start registers the purge job and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.purger == nil {
		return errors.New("scheduler requires a purger")
	}
	if _, err := s.cron.AddFunc(s.schedule, s.purge); err != nil {
		return err
	}
	s.logger.Info("starting session purge scheduler", slog.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running purge to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping session purge scheduler")
	<-s.cron.Stop().Done()
}

// RunOnce purges expired sessions immediately.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	if s.purger == nil {
		return 0, errors.New("scheduler requires a purger")
	}
	return s.purger.PurgeExpired(ctx)
}

func (s *Scheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	purged, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("failed to purge expired sessions", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("purged expired sessions", slog.Int64("count", purged))
}
