package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/commands"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// validationTimeoutReason is the cancellation reason for orders whose stock
// validation never completed.
const validationTimeoutReason = "stock validation timed out"

// ValidationTimeoutJob periodically expires stale validation progress and
// cancels the affected orders. Without it, orders whose validation results
// never fully arrive would stay Pending forever.
type ValidationTimeoutJob struct {
	aggregator *services.ValidationAggregator
	handler    commands.CancelOrderCommandHandler
	timeout    time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewValidationTimeoutJob creates a job cancelling orders whose validation
// progress is older than the given timeout.
func NewValidationTimeoutJob(
	aggregator *services.ValidationAggregator,
	handler commands.CancelOrderCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *ValidationTimeoutJob {
	return &ValidationTimeoutJob{
		aggregator: aggregator,
		handler:    handler,
		timeout:    timeout,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "validation_timeout_job"),
	}
}

// Start begins the timeout job, sweeping once a minute.
func (j *ValidationTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Validation timeout job started (sweeping every minute)",
		"timeout", j.timeout.String(),
	)
	return nil
}

// Stop stops the timeout job.
func (j *ValidationTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Validation timeout job stopped")
}

func (j *ValidationTimeoutJob) sweep() {
	ctx := context.Background()

	for _, orderID := range j.aggregator.ExpireStale(j.timeout) {
		identifier, err := order.ParseIdentifier(orderID.String())
		if err != nil {
			j.logger.ErrorContext(ctx, "Validation timeout sweep produced an invalid order id",
				"orderId", orderID.String(), "error", err)
			continue
		}

		cmd, err := commands.NewCancelOrderCommand(identifier, validationTimeoutReason)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build cancellation for timed-out order",
				"orderId", orderID.String(), "error", err)
			continue
		}

		if _, err = j.handler.Handle(ctx, cmd); err != nil {
			// An order the user already cancelled is an expected race
			if errors.Is(err, order.ErrAlreadyCancelled) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to cancel timed-out order",
				"orderId", orderID.String(), "error", err)
			continue
		}

		j.logger.WarnContext(ctx, "Order cancelled after validation timeout",
			"orderId", orderID.String())
	}
}
