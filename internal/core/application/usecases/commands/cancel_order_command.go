package commands

import (
	"errors"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// defaultCancelReason is used when the caller does not state why the order
// is being cancelled.
const defaultCancelReason = "cancelled by request"

// CancelOrderCommand represents a request to cancel an order, addressed by
// id or order number. The reason travels into the cancellation notification.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	identifier order.Identifier
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// An empty reason falls back to a generic one.
func NewCancelOrderCommand(identifier order.Identifier, reason string) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIdentifier(identifier),
		command.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// Identifier returns the order lookup key (id or order number).
func (c CancelOrderCommand) Identifier() order.Identifier {
	return c.identifier
}

// Reason returns the cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setIdentifier(identifier order.Identifier) error {
	if !identifier.IsID() && identifier.Number() == "" {
		return errs.NewValueIsRequiredError("identifier")
	}

	c.identifier = identifier
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		reason = defaultCancelReason
	}

	c.reason = reason
	return nil
}
