package commands

import (
	"context"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/ports"
)

// resolveOrder loads an order by the id-vs-number resolution rule: a
// well-formed UUID resolves through Get, anything else through GetByNumber.
func resolveOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	identifier order.Identifier,
) (*order.Order, error) {
	if identifier.IsID() {
		return repo.Get(ctx, identifier.ID())
	}
	return repo.GetByNumber(ctx, identifier.Number())
}
