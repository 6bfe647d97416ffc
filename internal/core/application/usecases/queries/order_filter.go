package queries

import (
	"errors"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
)

// ErrInvalidDateRange is returned when a filter's initial date is after its
// finish date. The check runs before any database access.
var ErrInvalidDateRange = errors.New("initial date must not be after finish date")

// OrderFilter narrows order history queries. Every field is optional and the
// present ones compose with AND semantics. The zero value matches everything.
//
// Example:
//
//	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
//	filter, err := NewOrderFilter(nil, "CEN-4821", &from, nil)
//	if err != nil {
//	    return err
//	}
type OrderFilter struct {
	orderID     *kernel.UUID
	orderNumber string
	initialDate *time.Time
	finishDate  *time.Time
}

// NewOrderFilter creates a filter from its optional predicates.
// Returns ErrInvalidDateRange when both dates are present and inverted.
func NewOrderFilter(
	orderID *kernel.UUID,
	orderNumber string,
	initialDate *time.Time,
	finishDate *time.Time,
) (OrderFilter, error) {
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return OrderFilter{}, err
		}
	}

	if initialDate != nil && finishDate != nil && initialDate.After(*finishDate) {
		return OrderFilter{}, ErrInvalidDateRange
	}

	return OrderFilter{
		orderID:     orderID,
		orderNumber: orderNumber,
		initialDate: initialDate,
		finishDate:  finishDate,
	}, nil
}

// OrderID returns the order id predicate, nil when absent.
func (f OrderFilter) OrderID() *kernel.UUID {
	return f.orderID
}

// OrderNumber returns the order number predicate, empty when absent.
func (f OrderFilter) OrderNumber() string {
	return f.orderNumber
}

// InitialDate returns the inclusive lower creation-date bound, nil when absent.
func (f OrderFilter) InitialDate() *time.Time {
	return f.initialDate
}

// FinishDate returns the inclusive upper creation-date bound, nil when absent.
func (f OrderFilter) FinishDate() *time.Time {
	return f.finishDate
}

// conditions renders the present predicates as SQL fragments with their
// bind arguments, ready to be AND-joined into a WHERE clause.
func (f OrderFilter) conditions() ([]string, []any) {
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if f.orderID != nil {
		clauses = append(clauses, "o.id = ?")
		args = append(args, f.orderID.Bytes())
	}
	if f.orderNumber != "" {
		clauses = append(clauses, "o.order_number = ?")
		args = append(args, f.orderNumber)
	}
	if f.initialDate != nil {
		clauses = append(clauses, "o.created_at >= ?")
		args = append(args, *f.initialDate)
	}
	if f.finishDate != nil {
		clauses = append(clauses, "o.created_at <= ?")
		args = append(args, *f.finishDate)
	}

	return clauses, args
}
