package commands

import (
	"errors"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/guard"
)

var (
	ErrChangeOrderStateCommandIsNotConstructed = errors.New(
		"ChangeOrderStateCommand must be created via NewChangeOrderStateCommand constructor",
	)
)

// ChangeOrderStateCommand represents a request to move an order to a new
// lifecycle status. The order is addressed by id or order number; shipping
// additionally carries the tracking number.
//
// Example:
//
//	identifier, _ := order.ParseIdentifier("CEN-4821")
//	cmd, err := NewChangeOrderStateCommand(identifier, order.Shipped, "TRACK-99")
//	if err != nil {
//	    return fmt.Errorf("invalid state change: %w", err)
//	}
//
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStateCommand struct { //nolint:recvcheck //using for validation
	identifier     order.Identifier
	target         order.Status
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewChangeOrderStateCommand creates a command to change an order's status.
// Validates that the identifier is present and the target status is a known
// status value. Tracking-number rules are enforced by the aggregate, not here,
// so the caller gets the precise domain error.
func NewChangeOrderStateCommand(
	identifier order.Identifier,
	target order.Status,
	trackingNumber string,
) (ChangeOrderStateCommand, error) {
	command := ChangeOrderStateCommand{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIdentifier(identifier),
		command.setTarget(target),
	); err != nil {
		return ChangeOrderStateCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStateCommandIsNotConstructed if validation fails.
func (c ChangeOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStateCommandIsNotConstructed)
}

// Identifier returns the order lookup key (id or order number).
func (c ChangeOrderStateCommand) Identifier() order.Identifier {
	return c.identifier
}

// Target returns the requested status.
func (c ChangeOrderStateCommand) Target() order.Status {
	return c.target
}

// TrackingNumber returns the shipment tracking number, empty unless shipping.
func (c ChangeOrderStateCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *ChangeOrderStateCommand) setIdentifier(identifier order.Identifier) error {
	if !identifier.IsID() && identifier.Number() == "" {
		return errs.NewValueIsRequiredError("identifier")
	}

	c.identifier = identifier
	return nil
}

func (c *ChangeOrderStateCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
