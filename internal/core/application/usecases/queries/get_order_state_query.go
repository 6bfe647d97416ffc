package queries

import (
	"errors"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/guard"
)

var (
	ErrGetOrderStateQueryIsNotConstructed = errors.New(
		"GetOrderStateQuery must be created via NewGetOrderStateQuery constructor",
	)
)

// GetOrderStateQuery retrieves the current lifecycle state of one order,
// addressed by id or order number.
//
// Example:
//
//	identifier, _ := order.ParseIdentifier("CEN-4821")
//	query, _ := NewGetOrderStateQuery(identifier)
//	state, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order state: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", state.OrderNumber, state.Status)
type GetOrderStateQuery struct {
	identifier order.Identifier

	guard guard.ConstructorGuard
}

// NewGetOrderStateQuery creates a query for one order's state.
func NewGetOrderStateQuery(identifier order.Identifier) (GetOrderStateQuery, error) {
	if !identifier.IsID() && identifier.Number() == "" {
		return GetOrderStateQuery{}, errs.NewValueIsRequiredError("identifier")
	}

	return GetOrderStateQuery{
		identifier: identifier,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStateQueryIsNotConstructed if validation fails.
func (q GetOrderStateQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStateQueryIsNotConstructed)
}

// Identifier returns the order lookup key (id or order number).
func (q GetOrderStateQuery) Identifier() order.Identifier {
	return q.identifier
}

// GetOrderStateQueryResponse represents one order's lifecycle state.
// The tracking number is empty unless the order shipped; UpdatedAt is nil
// for orders that never left Pending.
type GetOrderStateQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	Status         string
	TrackingNumber string
	UpdatedAt      *time.Time
}
