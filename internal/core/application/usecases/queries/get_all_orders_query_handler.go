package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves order histories across users from the
// database, newest first.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for unscoped order history queries.
// Requires a GORM database connection for query execution.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the history query. The user name predicate matches with
// case and surrounding whitespace folded away on both sides; all predicates
// compose with AND. No matches yields an empty slice, not an error.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions, args := query.Filter().conditions()

	if query.UserID() != nil {
		conditions = append(conditions, "o.user_id = ?")
		args = append(args, query.UserID().Bytes())
	}
	if query.UserName() != "" {
		conditions = append(conditions, "LOWER(TRIM(o.user_name)) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(query.UserName())))
	}

	return querySummaries(h.db.WithContext(ctx), conditions, args)
}
