package commands

import (
	"errors"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/guard"
)

var (
	ErrRecordStockValidationCommandIsNotConstructed = errors.New(
		"RecordStockValidationCommand must be created via NewRecordStockValidationCommand constructor",
	)
)

// RecordStockValidationCommand represents one per-line stock-validation
// result reported by the stock service for an order.
type RecordStockValidationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	productID kernel.UUID
	success   bool

	guard guard.ConstructorGuard
}

// NewRecordStockValidationCommand creates a command carrying one validation
// result. The product id identifies the validated line and is kept for
// logging; aggregation itself only counts results per order.
func NewRecordStockValidationCommand(
	orderID kernel.UUID,
	productID kernel.UUID,
	success bool,
) (RecordStockValidationCommand, error) {
	command := RecordStockValidationCommand{
		success: success,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setProductID(productID),
	); err != nil {
		return RecordStockValidationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordStockValidationCommandIsNotConstructed if validation fails.
func (c RecordStockValidationCommand) Validate() error {
	return c.guard.Validate(ErrRecordStockValidationCommandIsNotConstructed)
}

// OrderID returns the id of the order the result belongs to.
func (c RecordStockValidationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the id of the validated product line.
func (c RecordStockValidationCommand) ProductID() kernel.UUID {
	return c.productID
}

// Success reports whether the line passed stock validation.
func (c RecordStockValidationCommand) Success() bool {
	return c.success
}

func (c *RecordStockValidationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordStockValidationCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}
