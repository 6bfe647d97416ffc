package queries_test

import (
	"testing"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/queries"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderFilter(t *testing.T) {
	t.Run("should create empty filter", func(t *testing.T) {
		filter, err := queries.NewOrderFilter(nil, "", nil, nil)

		require.NoError(t, err)
		assert.Nil(t, filter.OrderID())
		assert.Empty(t, filter.OrderNumber())
		assert.Nil(t, filter.InitialDate())
		assert.Nil(t, filter.FinishDate())
	})

	t.Run("should create filter with all predicates", func(t *testing.T) {
		orderID := kernel.NewUUID()
		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		filter, err := queries.NewOrderFilter(&orderID, "CEN-4821", &from, &to)

		require.NoError(t, err)
		require.NotNil(t, filter.OrderID())
		assert.True(t, filter.OrderID().IsEqual(orderID))
		assert.Equal(t, "CEN-4821", filter.OrderNumber())
		assert.Equal(t, from, *filter.InitialDate())
		assert.Equal(t, to, *filter.FinishDate())
	})

	t.Run("should allow equal initial and finish dates", func(t *testing.T) {
		day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		_, err := queries.NewOrderFilter(nil, "", &day, &day)

		require.NoError(t, err)
	})

	t.Run("should reject inverted date range before any database access", func(t *testing.T) {
		from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, -1, 0)

		_, err := queries.NewOrderFilter(nil, "", &from, &to)

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrInvalidDateRange)
	})

	t.Run("should reject unconstructed order id", func(t *testing.T) {
		_, err := queries.NewOrderFilter(&kernel.UUID{}, "", nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
