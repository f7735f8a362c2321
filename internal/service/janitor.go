package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionJanitor periodically abandons quiz sessions nobody finished.
type SessionJanitor struct {
	repo     StaleSessionRepository
	schedule string        // cron expression, five fields or a descriptor like @hourly
	ttl      time.Duration // how long a session may stay active
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionJanitor(repo StaleSessionRepository, schedule string, ttl time.Duration, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		repo:     repo,
		schedule: schedule,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the sweep on schedule until ctx is cancelled.
func (j *SessionJanitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		if _, err := j.Sweep(ctx); err != nil {
			j.logger.Error("failed to abandon stale sessions", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("ttl", j.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")

	return nil
}

// Sweep abandons sessions started more than ttl ago and returns how many.
func (j *SessionJanitor) Sweep(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.ttl)

	n, err := j.repo.AbandonStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		j.logger.Info("stale sessions abandoned",
			zap.Int64("count", n),
			zap.Time("started_before", cutoff),
		)
	}

	return n, nil
}
