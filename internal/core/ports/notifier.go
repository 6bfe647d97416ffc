package ports

import (
	"context"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
)

// Notifier is the outbound notification contract. Implementations send the
// user-facing messages (email in production) for order lifecycle events.
//
// All calls are fire-and-forget from the caller's perspective: a notification
// failure must never roll back the state change that triggered it. Command
// handlers log the error and move on.
type Notifier interface {
	// NotifyCreated informs the user that their order was received.
	NotifyCreated(ctx context.Context, aggregate *order.Order) error

	// NotifyStateChanged informs the user about a status transition.
	// The tracking number is included when the order shipped.
	NotifyStateChanged(ctx context.Context, aggregate *order.Order, trackingNumber string) error

	// NotifyCancelled informs the user that their order was cancelled.
	NotifyCancelled(ctx context.Context, aggregate *order.Order, reason string) error
}
