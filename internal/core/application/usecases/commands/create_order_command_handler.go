package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/services"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/ports"
)

// maxCreateAttempts bounds the retry loop around order-number collisions.
// The number space has 9000 slots, so more than a couple of unique-index
// collisions in a row means something is wrong with the store.
const maxCreateAttempts = 5

// CreateOrderCommandHandler handles the business logic for order creation.
// Generates a unique CEN-XXXX order number, persists the order in Pending
// status, publishes the order-created event for stock validation and sends
// the confirmation notification.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, notifier, logger)
//	cmd, _ := NewCreateOrderCommand(userID, "Jane Roe", "jane@example.com", "456 Oak Avenue", lines)
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created is persisted in Pending status, awaiting stock validation
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderCreatedPublisher
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence, a publisher for
// the order-created event and a notifier for the confirmation message.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderCreatedPublisher,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger.With("component", "CreateOrderCommandHandler"),
	}
}

// Handle processes the order creation command and returns the created order.
//
// The order number is generated with a uniqueness pre-check; if a concurrent
// creation still wins the same number, the unique index rejects the insert
// and the whole attempt is retried with a fresh number. The order-created
// event and the confirmation email are emitted after the commit; failures
// there are logged but never fail the creation.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var created *order.Order
	var err error
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		created, err = h.createOnce(ctx, cmd)
		if err == nil {
			break
		}
		if !errors.Is(err, ports.ErrOrderNumberTaken) {
			return nil, err
		}

		h.logger.Warn("order number collided on insert, retrying",
			"attempt", attempt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("could not allocate a free order number: %w", err)
	}

	if pubErr := h.publisher.PublishCreated(ctx, created); pubErr != nil {
		h.logger.Error("failed to publish order-created event",
			"orderId", created.ID().String(),
			"error", pubErr,
		)
	}

	if notifyErr := h.notifier.NotifyCreated(ctx, created); notifyErr != nil {
		h.logger.Error("failed to send order confirmation",
			"orderId", created.ID().String(),
			"error", notifyErr,
		)
	}

	return created, nil
}

// createOnce runs a single order-number allocation plus insert inside one
// transaction. Returns ports.ErrOrderNumberTaken when the unique index on the
// order number rejected the insert.
func (h *CreateOrderCommandHandler) createOnce(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	number, err := services.NewNumberGenerator(orderRepo).Generate(ctx)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		cmd.UserID(),
		cmd.UserName(),
		cmd.UserEmail(),
		cmd.Address(),
		cmd.Lines(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
