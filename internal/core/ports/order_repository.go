package ports

import (
	"context"
	"errors"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
)

// ErrOrderNumberTaken is returned by Add when the order number collides with
// an existing order. The unique index on the number column is the authority;
// the generator's pre-check only narrows the race window. Callers regenerate
// the number and retry.
var ErrOrderNumberTaken = errors.New("order number is already taken")

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// by id and by human-readable order number.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines.
	// Returns ErrOrderNumberTaken on an order-number collision.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Lines are immutable after creation; only the order row is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its lines by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate with its lines by its
	// human-readable order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// ExistsNumber reports whether an order with the given number exists.
	// Used by the order number generator's uniqueness check.
	ExistsNumber(ctx context.Context, number string) (bool, error)

	// CountLines returns the number of lines of the given order.
	// Used by the validation aggregator to size the expected result count.
	CountLines(ctx context.Context, orderID kernel.UUID) (int, error)
}
