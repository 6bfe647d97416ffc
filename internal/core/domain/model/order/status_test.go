package order_test

import (
	"fmt"
	"testing"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Processing))
		assert.Equal(t, 3, int(order.Shipped))
		assert.Equal(t, 4, int(order.Delivered))
		assert.Equal(t, 5, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending,
			order.Processing,
			order.Shipped,
			order.Delivered,
			order.Cancelled,
		} {
			assert.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		for _, value := range []int{-1, 6, 42} {
			err := order.Status(value).Validate()

			require.Error(t, err, fmt.Sprintf("value %d", value))
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should render known statuses", func(t *testing.T) {
		assert.Equal(t, "Pending", order.Pending.String())
		assert.Equal(t, "Processing", order.Processing.String())
		assert.Equal(t, "Shipped", order.Shipped.String())
		assert.Equal(t, "Delivered", order.Delivered.String())
		assert.Equal(t, "Cancelled", order.Cancelled.String())
	})

	t.Run("should render invalid values as Unknown", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Unknown.String())
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every valid status name", func(t *testing.T) {
		for _, expected := range []order.Status{
			order.Pending,
			order.Processing,
			order.Shipped,
			order.Delivered,
			order.Cancelled,
		} {
			parsed, err := order.ParseStatus(expected.String())

			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "Unknown", "pending", "SHIPPED", "Completed"} {
			parsed, err := order.ParseStatus(name)

			require.Error(t, err, name)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, order.Unknown, parsed)
		}
	})
}

func TestStatus_IsFinal(t *testing.T) {
	assert.False(t, order.Pending.IsFinal())
	assert.False(t, order.Processing.IsFinal())
	assert.False(t, order.Shipped.IsFinal())
	assert.True(t, order.Delivered.IsFinal())
	assert.True(t, order.Cancelled.IsFinal())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should allow the defined workflow transitions", func(t *testing.T) {
		allowed := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Pending, order.Processing},
			{order.Pending, order.Shipped},
			{order.Pending, order.Delivered},
			{order.Pending, order.Cancelled},
			{order.Processing, order.Shipped},
			{order.Processing, order.Delivered},
			{order.Processing, order.Cancelled},
			{order.Shipped, order.Delivered},
		}

		for _, transition := range allowed {
			assert.True(t, transition.from.CanTransitionTo(transition.to),
				fmt.Sprintf("%s -> %s", transition.from, transition.to))
		}
	})

	t.Run("should forbid everything else", func(t *testing.T) {
		forbidden := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Processing, order.Pending},
			{order.Shipped, order.Pending},
			{order.Shipped, order.Processing},
			{order.Shipped, order.Cancelled},
			{order.Delivered, order.Pending},
			{order.Delivered, order.Shipped},
			{order.Delivered, order.Cancelled},
			{order.Cancelled, order.Pending},
			{order.Cancelled, order.Processing},
			{order.Cancelled, order.Shipped},
			{order.Cancelled, order.Delivered},
		}

		for _, transition := range forbidden {
			assert.False(t, transition.from.CanTransitionTo(transition.to),
				fmt.Sprintf("%s -> %s", transition.from, transition.to))
		}
	})

	t.Run("final states admit no transitions", func(t *testing.T) {
		for _, target := range []order.Status{
			order.Pending, order.Processing, order.Shipped, order.Delivered, order.Cancelled,
		} {
			assert.False(t, order.Delivered.CanTransitionTo(target))
			assert.False(t, order.Cancelled.CanTransitionTo(target))
		}
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should return target for allowed transition", func(t *testing.T) {
		status, err := order.Pending.TransitionTo(order.Processing)

		require.NoError(t, err)
		assert.Equal(t, order.Processing, status)
	})

	t.Run("should fail for forbidden transition", func(t *testing.T) {
		status, err := order.Shipped.TransitionTo(order.Cancelled)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Unknown, status)
	})

	t.Run("should fail for invalid target", func(t *testing.T) {
		status, err := order.Pending.TransitionTo(order.Unknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Unknown, status)
	})
}

func TestStatus_CancelTransition(t *testing.T) {
	t.Run("should cancel pending and processing orders", func(t *testing.T) {
		for _, from := range []order.Status{order.Pending, order.Processing} {
			status, err := from.CancelTransition()

			require.NoError(t, err, from.String())
			assert.Equal(t, order.Cancelled, status)
		}
	})

	t.Run("should return distinct error per terminal state", func(t *testing.T) {
		cases := []struct {
			from     order.Status
			expected error
		}{
			{order.Cancelled, order.ErrAlreadyCancelled},
			{order.Shipped, order.ErrAlreadyShipped},
			{order.Delivered, order.ErrAlreadyDelivered},
		}

		for _, testCase := range cases {
			status, err := testCase.from.CancelTransition()

			require.Error(t, err, testCase.from.String())
			assert.ErrorIs(t, err, testCase.expected)
			assert.Equal(t, order.Unknown, status)
		}
	})

	t.Run("should reject cancellation from unknown status", func(t *testing.T) {
		_, err := order.Unknown.CancelTransition()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}
