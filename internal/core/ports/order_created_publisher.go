package ports

import (
	"context"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
)

// OrderCreatedPublisher emits the order-created event consumed by the stock
// service. Exactly one event is published per created order, carrying the
// product id and quantity of every line; the stock service answers with one
// validation result per line.
//
// Publishing happens after the order was committed. A publish failure must
// not roll the order back; the caller logs it and relies on operational
// replay.
type OrderCreatedPublisher interface {
	PublishCreated(ctx context.Context, aggregate *order.Order) error
}
