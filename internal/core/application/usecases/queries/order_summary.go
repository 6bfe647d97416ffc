package queries

import (
	"database/sql"
	"strings"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderSummaryResponse is one row of an order history listing. The total is
// computed from the order lines at read time.
type OrderSummaryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	UserName       string
	Address        string
	Status         string
	TrackingNumber string
	TotalPrice     float64
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// orderSummarySelect lists orders with their line totals. Callers append
// WHERE conditions and bind arguments; results are newest first.
const orderSummarySelect = `
	SELECT
		o.id,
		o.order_number,
		o.user_name,
		o.address,
		o.status,
		o.tracking_number,
		COALESCE(SUM(l.quantity * l.unit_price), 0) AS total_price,
		o.created_at,
		o.updated_at
	FROM orders o
	LEFT JOIN order_lines l ON l.order_id = o.id
`

const orderSummaryGroup = `
	GROUP BY o.id, o.order_number, o.user_name, o.address, o.status,
		o.tracking_number, o.created_at, o.updated_at
	ORDER BY o.created_at DESC
`

// scanOrderSummaries drains the result of an orderSummarySelect query.
// Always returns a non-nil slice so empty histories render as [] not null.
func scanOrderSummaries(rows *sql.Rows) ([]OrderSummaryResponse, error) {
	summaries := make([]OrderSummaryResponse, 0)

	for rows.Next() {
		var (
			id             uuid.UUID
			orderNumber    string
			userName       string
			address        string
			status         int
			trackingNumber sql.NullString
			totalPrice     float64
			createdAt      time.Time
			updatedAt      sql.NullTime
		)

		err := rows.Scan(
			&id,
			&orderNumber,
			&userName,
			&address,
			&status,
			&trackingNumber,
			&totalPrice,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		summary := OrderSummaryResponse{
			ID:             orderID,
			OrderNumber:    orderNumber,
			UserName:       userName,
			Address:        address,
			Status:         order.Status(status).String(),
			TrackingNumber: trackingNumber.String,
			TotalPrice:     totalPrice,
			CreatedAt:      createdAt,
		}
		if updatedAt.Valid {
			updated := updatedAt.Time
			summary.UpdatedAt = &updated
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// querySummaries runs the summary select with the given WHERE conditions.
// The *gorm.DB is expected to already carry the request context.
func querySummaries(db *gorm.DB, conditions []string, args []any) ([]OrderSummaryResponse, error) {
	statement := orderSummarySelect
	if len(conditions) > 0 {
		statement += " WHERE " + strings.Join(conditions, " AND ")
	}
	statement += orderSummaryGroup

	rows, err := db.Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
