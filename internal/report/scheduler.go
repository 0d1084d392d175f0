package report

import (
	"context"
	"time"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/pkg/logger"
)

// Scheduler fires a job once a day at a fixed wall-clock time in a fixed
// timezone. It sleeps until the next firing instead of polling, and a job
// failure never stops the loop.
type Scheduler struct {
	hour     int
	minute   int
	location *time.Location
	job      func(ctx context.Context) error
}

// NewScheduler builds a daily scheduler. An unknown timezone name falls back
// to UTC and is logged.
func NewScheduler(hour, minute int, timezone string, job func(ctx context.Context) error) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Log.Warn().Str("timezone", timezone).Err(err).Msg("unknown report timezone, using UTC")
		loc = time.UTC
	}
	return &Scheduler{hour: hour, minute: minute, location: loc, job: job}
}

// NextFire returns the next firing instant strictly after now.
func (s *Scheduler) NextFire(now time.Time) time.Time {
	local := now.In(s.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.hour, s.minute, 0, 0, s.location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is cancelled, firing the job once per day.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := s.NextFire(time.Now())
		logger.Log.Info().Time("next_fire", next).Msg("report scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := s.job(ctx); err != nil {
			logger.Log.Error().Err(err).Msg("scheduled report failed")
		}
	}
}
