package queries

import (
	"errors"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/guard"
)

var (
	ErrGetAllOrdersQueryIsNotConstructed = errors.New(
		"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
	)
)

// GetAllOrdersQuery retrieves the order history across all users, optionally
// narrowed by owning user id, user name and an OrderFilter. The user name
// match ignores case and surrounding whitespace.
//
// Example:
//
//	query, _ := NewGetAllOrdersQuery(nil, "  jane ROE ", OrderFilter{})
//	orders, err := handler.Handle(ctx, query)
type GetAllOrdersQuery struct {
	userID   *kernel.UUID
	userName string
	filter   OrderFilter

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates an unscoped history query. All predicates are
// optional; the zero-argument form lists every order.
func NewGetAllOrdersQuery(userID *kernel.UUID, userName string, filter OrderFilter) (GetAllOrdersQuery, error) {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return GetAllOrdersQuery{}, err
		}
	}

	return GetAllOrdersQuery{
		userID:   userID,
		userName: userName,
		filter:   filter,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllOrdersQueryIsNotConstructed if validation fails.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// UserID returns the optional owning-user predicate, nil when absent.
func (q GetAllOrdersQuery) UserID() *kernel.UUID {
	return q.userID
}

// UserName returns the optional user name predicate, empty when absent.
func (q GetAllOrdersQuery) UserName() string {
	return q.userName
}

// Filter returns the optional narrowing predicates.
func (q GetAllOrdersQuery) Filter() OrderFilter {
	return q.filter
}
