package queries

import (
	"context"
	"database/sql"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStateQueryHandler reads one order's state from the database.
type GetOrderStateQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStateQueryHandler creates a handler for order state queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStateQueryHandler(db *gorm.DB) GetOrderStateQueryHandler {
	return GetOrderStateQueryHandler{db: db}
}

// Handle executes the state lookup. Resolves the identifier against the id
// column when it is a well-formed UUID, against the order number otherwise.
// Returns an ObjectNotFoundError when no order matches.
func (h GetOrderStateQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStateQuery,
) (GetOrderStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStateQueryResponse{}, err
	}

	where := "order_number = ?"
	arg := any(query.Identifier().Number())
	if query.Identifier().IsID() {
		where = "id = ?"
		arg = query.Identifier().ID().Bytes()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			tracking_number,
			updated_at
		FROM orders
		WHERE `+where,
		arg).Rows()
	if err != nil {
		return GetOrderStateQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderStateQueryResponse{}, err
		}
		return GetOrderStateQueryResponse{},
			errs.NewObjectNotFoundError("identifier", query.Identifier().String())
	}

	var (
		id             uuid.UUID
		orderNumber    string
		status         int
		trackingNumber sql.NullString
		updatedAt      sql.NullTime
	)
	if err = rows.Scan(&id, &orderNumber, &status, &trackingNumber, &updatedAt); err != nil {
		return GetOrderStateQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderStateQueryResponse{}, err
	}

	response := GetOrderStateQueryResponse{
		ID:             orderID,
		OrderNumber:    orderNumber,
		Status:         order.Status(status).String(),
		TrackingNumber: trackingNumber.String,
	}
	if updatedAt.Valid {
		updated := updatedAt.Time
		response.UpdatedAt = &updated
	}

	return response, nil
}
