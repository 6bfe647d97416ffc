package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler retrieves a user's order history from the
// database, newest first.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for user order history queries.
// Requires a GORM database connection for query execution.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the history query. Filter predicates compose with AND; a
// user with no matching orders gets an empty slice, not an error.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions, args := query.Filter().conditions()
	conditions = append(conditions, "o.user_id = ?")
	args = append(args, query.UserID().Bytes())

	return querySummaries(h.db.WithContext(ctx), conditions, args)
}
