package crons

import (
	"context"
	"time"

	"github.com/robfig/cron"
	"github.com/rs/zerolog/log"
)

// Cleaner is the expiry cleanup pass run on schedule.
type Cleaner interface {
	CleanupExpired(ctx context.Context, now time.Time) int
}

// Timeout bounds a single scheduled cleanup pass.
const Timeout = 5 * time.Minute

// CronCleanupExpired returns the scheduled job deactivating expired
// announcements.
func CronCleanupExpired(svc Cleaner) func() {
	return func() {
		logger := log.With().
			Str("section", "crons").
			Str("method", "CronCleanupExpired").
			Logger()

		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()

		n := svc.CleanupExpired(ctx, time.Now())
		logger.Debug().Int("flipped", n).Msg("Cleanup pass finished")
	}
}

// Start schedules the cleanup job, kicks off one pass in the background and
// starts the scheduler. Stop the returned cron on shutdown.
func Start(schedule string, svc Cleaner) (*cron.Cron, error) {
	c := cron.New()
	callback := CronCleanupExpired(svc)
	if err := c.AddFunc(schedule, callback); err != nil {
		return nil, err
	}
	go callback()
	c.Start()
	return c, nil
}
