package commands

import (
	"errors"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a new purchase order.
// Carries the owning user, the shipping address and the ordered lines; the
// order id and the order number are generated by the handler.
//
// Example:
//
//	line, _ := order.NewLine(productID, "Keyboard", 2, 29990)
//	cmd, err := NewCreateOrderCommand(userID, "Jane Roe", "jane@example.com", "123 Main Street", []order.Line{line})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created", created.OrderNumber())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	userName  string
	userEmail string
	address   string
	lines     []order.Line

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new purchase order.
// Validates that the user id is valid, the user name, email and address are
// not empty, and at least one constructed line is present.
func NewCreateOrderCommand(
	userID kernel.UUID,
	userName string,
	userEmail string,
	address string,
	lines []order.Line,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setUserID(userID),
		orderCommand.setUserName(userName),
		orderCommand.setUserEmail(userEmail),
		orderCommand.setAddress(address),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the identifier of the user placing the order.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// UserName returns the display name of the user placing the order.
func (c CreateOrderCommand) UserName() string {
	return c.userName
}

// UserEmail returns the email address notifications are sent to.
func (c CreateOrderCommand) UserEmail() string {
	return c.userEmail
}

// Address returns the shipping destination.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Lines returns the ordered product lines.
func (c CreateOrderCommand) Lines() []order.Line {
	return c.lines
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setUserName(userName string) error {
	if userName == "" {
		return errs.NewValueIsRequiredError("userName")
	}

	c.userName = userName
	return nil
}

func (c *CreateOrderCommand) setUserEmail(userEmail string) error {
	if userEmail == "" {
		return errs.NewValueIsRequiredError("userEmail")
	}

	c.userEmail = userEmail
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = lines
	return nil
}
