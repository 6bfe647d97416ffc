package order_test

import (
	"testing"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("should create valid line", func(t *testing.T) {
		productID := kernel.NewUUID()

		line, err := order.NewLine(productID, "Mechanical Keyboard", 2, 29990)

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		assert.True(t, line.ProductID().IsEqual(productID))
		assert.Equal(t, "Mechanical Keyboard", line.ProductName())
		assert.Equal(t, 2, line.Quantity())
		assert.InDelta(t, 29990.0, line.UnitPrice(), 0.001)
	})

	t.Run("should fail with invalid product id", func(t *testing.T) {
		_, err := order.NewLine(kernel.UUID{}, "Mechanical Keyboard", 2, 29990)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should fail with empty product name", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), "", 2, 29990)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			_, err := order.NewLine(kernel.NewUUID(), "Mechanical Keyboard", quantity, 29990)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should fail with non-positive unit price", func(t *testing.T) {
		for _, unitPrice := range []float64{0, -0.01} {
			_, err := order.NewLine(kernel.NewUUID(), "Mechanical Keyboard", 2, unitPrice)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestLine_Validate(t *testing.T) {
	t.Run("should fail for zero value line", func(t *testing.T) {
		var line order.Line

		assert.ErrorIs(t, line.Validate(), order.ErrLineIsNotConstructed)
	})
}

func TestLine_Subtotal(t *testing.T) {
	t.Run("should multiply quantity by unit price", func(t *testing.T) {
		line, err := order.NewLine(kernel.NewUUID(), "USB Cable", 3, 2990)

		require.NoError(t, err)
		assert.InDelta(t, 8970.0, line.Subtotal(), 0.001)
	})
}
