package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLineCounter struct {
	mock.Mock
}

func (m *MockLineCounter) CountLines(ctx context.Context, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func newAggregator(t *testing.T, expectedLines int) (*services.ValidationAggregator, kernel.UUID) {
	t.Helper()

	counter := &MockLineCounter{}
	counter.On("CountLines", mock.Anything, mock.Anything).Return(expectedLines, nil)

	return services.NewValidationAggregator(counter), kernel.NewUUID()
}

func TestValidationAggregator_OnValidationResult(t *testing.T) {
	ctx := context.Background()

	t.Run("should advance when every line validates", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 3)

		for i := 0; i < 2; i++ {
			decision, err := aggregator.OnValidationResult(ctx, orderID, true)

			require.NoError(t, err)
			assert.Equal(t, services.DecisionPending, decision)
		}

		decision, err := aggregator.OnValidationResult(ctx, orderID, true)

		require.NoError(t, err)
		assert.Equal(t, services.DecisionAdvance, decision)
		assert.Equal(t, 0, aggregator.InFlight())
	})

	t.Run("should advance single line order on first success", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 1)

		decision, err := aggregator.OnValidationResult(ctx, orderID, true)

		require.NoError(t, err)
		assert.Equal(t, services.DecisionAdvance, decision)
	})

	t.Run("should cancel immediately on failure", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 3)

		decision, err := aggregator.OnValidationResult(ctx, orderID, false)

		require.NoError(t, err)
		assert.Equal(t, services.DecisionCancel, decision)
		assert.Equal(t, 0, aggregator.InFlight())
	})

	t.Run("failure wins regardless of arrival order", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 3)

		decision, err := aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)
		assert.Equal(t, services.DecisionPending, decision)

		decision, err = aggregator.OnValidationResult(ctx, orderID, false)
		require.NoError(t, err)
		assert.Equal(t, services.DecisionCancel, decision)

		// the remaining success is a late delivery for a settled order
		decision, err = aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)
		assert.Equal(t, services.DecisionPending, decision)
	})

	t.Run("should ignore duplicate events after advance", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 2)

		_, err := aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)
		decision, err := aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)
		require.Equal(t, services.DecisionAdvance, decision)

		for _, success := range []bool{true, false} {
			decision, err = aggregator.OnValidationResult(ctx, orderID, success)

			require.NoError(t, err)
			assert.Equal(t, services.DecisionPending, decision)
		}
	})

	t.Run("should read expected count once per order", func(t *testing.T) {
		counter := &MockLineCounter{}
		counter.On("CountLines", mock.Anything, mock.Anything).Return(2, nil).Once()

		aggregator := services.NewValidationAggregator(counter)
		orderID := kernel.NewUUID()

		_, err := aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)
		_, err = aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)

		counter.AssertExpectations(t)
	})

	t.Run("should propagate line counter failure", func(t *testing.T) {
		counter := &MockLineCounter{}
		counter.On("CountLines", mock.Anything, mock.Anything).Return(0, assert.AnError)

		aggregator := services.NewValidationAggregator(counter)

		decision, err := aggregator.OnValidationResult(ctx, kernel.NewUUID(), true)

		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, services.DecisionPending, decision)
	})

	t.Run("should surface validation race for zero expected lines", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 0)

		_, err := aggregator.OnValidationResult(ctx, orderID, true)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrValidationRace)
	})

	t.Run("should produce exactly one advance under concurrency", func(t *testing.T) {
		const lineCount = 64

		aggregator, orderID := newAggregator(t, lineCount)

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			advances int
			cancels  int
		)

		for i := 0; i < lineCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				decision, err := aggregator.OnValidationResult(ctx, orderID, true)
				assert.NoError(t, err)

				mu.Lock()
				defer mu.Unlock()
				switch decision {
				case services.DecisionAdvance:
					advances++
				case services.DecisionCancel:
					cancels++
				case services.DecisionPending:
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, advances)
		assert.Equal(t, 0, cancels)
		assert.Equal(t, 0, aggregator.InFlight())
	})

	t.Run("should never advance when a concurrent failure is present", func(t *testing.T) {
		const lineCount = 64

		aggregator, orderID := newAggregator(t, lineCount)

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			advances int
			cancels  int
		)

		for i := 0; i < lineCount; i++ {
			success := i != 17
			wg.Add(1)
			go func() {
				defer wg.Done()

				decision, err := aggregator.OnValidationResult(ctx, orderID, success)
				assert.NoError(t, err)

				mu.Lock()
				defer mu.Unlock()
				switch decision {
				case services.DecisionAdvance:
					advances++
				case services.DecisionCancel:
					cancels++
				case services.DecisionPending:
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 0, advances)
		assert.Equal(t, 1, cancels)
	})
}

func TestValidationAggregator_ExpireStale(t *testing.T) {
	ctx := context.Background()

	t.Run("should cancel stale progress and return its order ids", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 3)

		_, err := aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)
		require.Equal(t, 1, aggregator.InFlight())

		cancelled := aggregator.ExpireStale(0)

		require.Len(t, cancelled, 1)
		assert.True(t, cancelled[0].IsEqual(orderID))
		assert.Equal(t, 0, aggregator.InFlight())
	})

	t.Run("should leave fresh progress alone", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 3)

		_, err := aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)

		cancelled := aggregator.ExpireStale(time.Hour)

		assert.Empty(t, cancelled)
		assert.Equal(t, 1, aggregator.InFlight())
	})

	t.Run("late events after expiry are ignored", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 2)

		_, err := aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)
		require.Len(t, aggregator.ExpireStale(0), 1)

		decision, err := aggregator.OnValidationResult(ctx, orderID, true)

		require.NoError(t, err)
		assert.Equal(t, services.DecisionPending, decision)
	})

	t.Run("should not report settled orders", func(t *testing.T) {
		aggregator, orderID := newAggregator(t, 1)

		decision, err := aggregator.OnValidationResult(ctx, orderID, true)
		require.NoError(t, err)
		require.Equal(t, services.DecisionAdvance, decision)

		assert.Empty(t, aggregator.ExpireStale(0))
	})
}
