package commands

import (
	"context"
	"log/slog"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/ports"
)

// CancelOrderCommandHandler handles order cancellations requested through the
// API. Cancellations driven by stock validation go through
// RecordStockValidationCommandHandler instead.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "CancelOrderCommandHandler"),
	}
}

// Handle processes the cancellation and returns the cancelled order.
//
// Shipped, Delivered and already-Cancelled orders are rejected with their
// distinct aggregate errors so callers can report the precise case. The
// cancellation notification is sent after the commit and a failure there is
// logged, never returned.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := resolveOrder(ctx, orderRepo, cmd.Identifier())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if notifyErr := h.notifier.NotifyCancelled(ctx, aggregate, cmd.Reason()); notifyErr != nil {
		h.logger.Error("failed to send cancellation notification",
			"orderId", aggregate.ID().String(),
			"error", notifyErr,
		)
	}

	return aggregate, nil
}
