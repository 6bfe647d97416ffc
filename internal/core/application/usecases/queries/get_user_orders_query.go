package queries

import (
	"errors"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/guard"
)

var (
	ErrGetUserOrdersQueryIsNotConstructed = errors.New(
		"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
	)
)

// GetUserOrdersQuery retrieves the order history of one user, optionally
// narrowed by an OrderFilter.
//
// Example:
//
//	filter, _ := NewOrderFilter(nil, "", &from, &to)
//	query, _ := NewGetUserOrdersQuery(userID, filter)
//	orders, err := handler.Handle(ctx, query)
type GetUserOrdersQuery struct {
	userID kernel.UUID
	filter OrderFilter

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a query for one user's order history.
// The zero OrderFilter matches all of the user's orders.
func NewGetUserOrdersQuery(userID kernel.UUID, filter OrderFilter) (GetUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserOrdersQuery{}, err
	}

	return GetUserOrdersQuery{
		userID: userID,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUserOrdersQueryIsNotConstructed if validation fails.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// UserID returns the id of the user whose history is requested.
func (q GetUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// Filter returns the optional narrowing predicates.
func (q GetUserOrdersQuery) Filter() OrderFilter {
	return q.filter
}
