package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"equiprent-backend/internal/jobs"
	"equiprent-backend/internal/logger"
)

// Scheduler runs the expiry sweeper on a fixed interval.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	interval := s.jobs.Config().Sweeper.Interval

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.jobs.SweepExpiredOrders)
	if err != nil {
		logger.Error("Failed to register SweepExpiredOrders job", "error", err)
		return
	}

	logger.Info("Sweeper registered", "interval", interval)
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting scheduler...")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running sweep to finish.
func (s *Scheduler) Stop() {
	logger.Info("Stopping scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}
