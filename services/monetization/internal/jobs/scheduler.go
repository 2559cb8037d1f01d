// Package jobs runs the periodic maintenance tasks of the monetization service.
package jobs

import (
	"context"
	"fmt"
	"time"

	"lick-scroll-monetization/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SubscriptionSweeper moves lapsed subscriptions to expired.
type SubscriptionSweeper interface {
	ExpireSubscriptions(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron     *cron.Cron
	schedule string
	sweeper  SubscriptionSweeper
	logger   *logger.Logger
}

// NewScheduler builds a UTC scheduler. Nothing runs until Start.
func NewScheduler(schedule string, sweeper SubscriptionSweeper, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		schedule: schedule,
		sweeper:  sweeper,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule subscription sweep %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started (subscription sweep: %s)", s.schedule)
	return nil
}

// Sweep runs one expiry pass. Errors are logged and retried on the next tick.
func (s *Scheduler) Sweep(ctx context.Context) {
	expired, err := s.sweeper.ExpireSubscriptions(ctx)
	if err != nil {
		s.logger.Error("Failed to expire subscriptions: %v", err)
		return
	}
	if expired > 0 {
		s.logger.Info("Expired %d subscriptions", expired)
	}
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}
