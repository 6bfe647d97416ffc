package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/commands"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	validationTimeoutJob *ValidationTimeoutJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	aggregator *services.ValidationAggregator,
	cancelHandler commands.CancelOrderCommandHandler,
	validationTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		validationTimeoutJob: NewValidationTimeoutJob(aggregator, cancelHandler, validationTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.validationTimeoutJob.Start(); err != nil {
		return fmt.Errorf("failed to start validation timeout job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.validationTimeoutJob.Stop()
}
