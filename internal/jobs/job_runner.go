package jobs

import (
	"equiprent-backend/internal/clock"
	"equiprent-backend/internal/config"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/service"
)

// JobRunner coordinates the background jobs sharing the order store.
type JobRunner struct {
	orders   repository.OrderRepository
	orderSvc service.OrderService
	clock    clock.Clock
	config   *config.Config
}

func NewJobRunner(orders repository.OrderRepository, orderSvc service.OrderService, clk clock.Clock, cfg *config.Config) *JobRunner {
	return &JobRunner{
		orders:   orders,
		orderSvc: orderSvc,
		clock:    clk,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config { return jr.config }

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
