package queries_test

import (
	"testing"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/queries"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderStateQuery(t *testing.T) {
	t.Run("should accept id identifier", func(t *testing.T) {
		identifier, err := order.ParseIdentifier(kernel.NewUUID().String())
		require.NoError(t, err)

		query, err := queries.NewGetOrderStateQuery(identifier)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.Identifier().IsID())
	})

	t.Run("should accept order number identifier", func(t *testing.T) {
		identifier, err := order.ParseIdentifier("CEN-4821")
		require.NoError(t, err)

		query, err := queries.NewGetOrderStateQuery(identifier)

		require.NoError(t, err)
		assert.Equal(t, "CEN-4821", query.Identifier().Number())
	})

	t.Run("should reject empty identifier", func(t *testing.T) {
		_, err := queries.NewGetOrderStateQuery(order.Identifier{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail validation for zero value query", func(t *testing.T) {
		var query queries.GetOrderStateQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderStateQueryIsNotConstructed)
	})
}

func TestNewGetUserOrdersQuery(t *testing.T) {
	t.Run("should create query with zero filter", func(t *testing.T) {
		userID := kernel.NewUUID()

		query, err := queries.NewGetUserOrdersQuery(userID, queries.OrderFilter{})

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.UserID().IsEqual(userID))
	})

	t.Run("should reject unconstructed user id", func(t *testing.T) {
		_, err := queries.NewGetUserOrdersQuery(kernel.UUID{}, queries.OrderFilter{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should fail validation for zero value query", func(t *testing.T) {
		var query queries.GetUserOrdersQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetUserOrdersQueryIsNotConstructed)
	})
}

func TestNewGetAllOrdersQuery(t *testing.T) {
	t.Run("should create unscoped query", func(t *testing.T) {
		query, err := queries.NewGetAllOrdersQuery(nil, "", queries.OrderFilter{})

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Nil(t, query.UserID())
		assert.Empty(t, query.UserName())
	})

	t.Run("should carry optional predicates", func(t *testing.T) {
		userID := kernel.NewUUID()

		query, err := queries.NewGetAllOrdersQuery(&userID, "Jane Roe", queries.OrderFilter{})

		require.NoError(t, err)
		require.NotNil(t, query.UserID())
		assert.True(t, query.UserID().IsEqual(userID))
		assert.Equal(t, "Jane Roe", query.UserName())
	})

	t.Run("should reject unconstructed user id", func(t *testing.T) {
		_, err := queries.NewGetAllOrdersQuery(&kernel.UUID{}, "", queries.OrderFilter{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should fail validation for zero value query", func(t *testing.T) {
		var query queries.GetAllOrdersQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetAllOrdersQueryIsNotConstructed)
	})
}
