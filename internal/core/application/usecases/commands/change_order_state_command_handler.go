package commands

import (
	"context"
	"log/slog"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/ports"
)

// ChangeOrderStateCommandHandler handles manual order status transitions.
// Loads the order by id or number, applies the transition through the
// aggregate's state machine and notifies the user on success.
type ChangeOrderStateCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewChangeOrderStateCommandHandler creates a handler for status transitions.
func NewChangeOrderStateCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeOrderStateCommandHandler {
	return ChangeOrderStateCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "ChangeOrderStateCommandHandler"),
	}
}

// Handle processes the state-change command and returns the updated order.
//
// Transition legality, tracking-number rules and terminal-state protection
// are enforced by the Order aggregate; this handler only orchestrates the
// load-mutate-store cycle. The notification is sent after the commit and a
// failure there is logged, never returned.
func (h *ChangeOrderStateCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStateCommand,
) (*order.Order, error) {
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

	if err = aggregate.TransitionTo(cmd.Target(), cmd.TrackingNumber()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if notifyErr := h.notifier.NotifyStateChanged(ctx, aggregate, cmd.TrackingNumber()); notifyErr != nil {
		h.logger.Error("failed to send state-change notification",
			"orderId", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", notifyErr,
		)
	}

	return aggregate, nil
}
