package order

import (
	"errors"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/guard"
)

var (
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")
)

// Line represents one product entry within an order. It is a value object
// owned by the Order aggregate: lines have no identity lifecycle outside
// their order.
//
// Invariants:
//   - Product identity must be a valid UUID
//   - Product name is denormalized at creation time and never re-fetched
//   - Quantity and unit price must be positive
//   - Subtotal is always derived, never stored
type Line struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   float64

	guard guard.ConstructorGuard
}

// NewLine creates a validated order line.
//
// Returns an error if the product ID is invalid, the product name is empty,
// or quantity/unit price are not positive.
func NewLine(productID kernel.UUID, productName string, quantity int, unitPrice float64) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setProductName(productName),
		line.setQuantity(quantity),
		line.setUnitPrice(unitPrice),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate ensures the line was created through the constructor.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the identity of the product this line refers to.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// ProductName returns the product display name captured at creation time.
func (l Line) ProductName() string {
	return l.productName
}

// Quantity returns the number of units ordered.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the price per unit.
func (l Line) UnitPrice() float64 {
	return l.unitPrice
}

// Subtotal returns quantity times unit price.
func (l Line) Subtotal() float64 {
	return float64(l.quantity) * l.unitPrice
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	l.productName = productName
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setUnitPrice(unitPrice float64) error {
	if unitPrice <= 0 {
		return errs.NewValueIsInvalidError("unitPrice")
	}
	l.unitPrice = unitPrice
	return nil
}
