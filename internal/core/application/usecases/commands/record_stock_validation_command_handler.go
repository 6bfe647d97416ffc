package commands

import (
	"context"
	"log/slog"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/services"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/ports"
)

// insufficientStockReason is the cancellation reason sent to the user when a
// line fails stock validation.
const insufficientStockReason = "insufficient stock"

// RecordStockValidationCommandHandler folds per-line stock-validation results
// into the aggregator and applies the resulting lifecycle decision: advance
// the order to Processing when all lines validated, cancel it when any line
// failed.
//
// Results arrive out of order and at least once; the aggregator guarantees
// exactly one terminal decision per order, so the lifecycle transition runs
// at most once no matter how events interleave.
type RecordStockValidationCommandHandler struct {
	uowFactory OrderUoWFactory
	aggregator *services.ValidationAggregator
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRecordStockValidationCommandHandler creates a handler folding validation
// results through the given aggregator.
func NewRecordStockValidationCommandHandler(
	uowFactory OrderUoWFactory,
	aggregator *services.ValidationAggregator,
	notifier ports.Notifier,
	logger *slog.Logger,
) RecordStockValidationCommandHandler {
	return RecordStockValidationCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
		notifier:   notifier,
		logger:     logger.With("component", "RecordStockValidationCommandHandler"),
	}
}

// Handle records one validation result. Most calls end with a pending
// decision and no side effects; the final result for an order triggers the
// Processing transition or the cancellation, plus the matching notification.
func (h *RecordStockValidationCommandHandler) Handle(ctx context.Context, cmd RecordStockValidationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	decision, err := h.aggregator.OnValidationResult(ctx, cmd.OrderID(), cmd.Success())
	if err != nil {
		return err
	}

	if decision == services.DecisionPending {
		h.logger.Debug("validation result recorded, decision pending",
			"orderId", cmd.OrderID().String(),
			"productId", cmd.ProductID().String(),
			"success", cmd.Success(),
		)
		return nil
	}

	aggregate, err := h.applyDecision(ctx, cmd.OrderID(), decision)
	if err != nil {
		return err
	}

	h.notify(ctx, aggregate, decision)
	return nil
}

// applyDecision runs the lifecycle change for a terminal decision inside one
// transaction and returns the updated order.
func (h *RecordStockValidationCommandHandler) applyDecision(
	ctx context.Context,
	orderID kernel.UUID,
	decision services.Decision,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if decision == services.DecisionAdvance {
		err = aggregate.TransitionTo(order.Processing, "")
	} else {
		err = aggregate.Cancel()
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h *RecordStockValidationCommandHandler) notify(
	ctx context.Context,
	aggregate *order.Order,
	decision services.Decision,
) {
	var err error
	if decision == services.DecisionAdvance {
		err = h.notifier.NotifyStateChanged(ctx, aggregate, "")
	} else {
		err = h.notifier.NotifyCancelled(ctx, aggregate, insufficientStockReason)
	}

	if err != nil {
		h.logger.Error("failed to send validation-outcome notification",
			"orderId", aggregate.ID().String(),
			"decision", decision.String(),
			"error", err,
		)
	}
}
