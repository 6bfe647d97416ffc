package commands_test

import (
	"errors"
	"testing"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/commands"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validationCommand(t *testing.T, orderID kernel.UUID, success bool) commands.RecordStockValidationCommand {
	t.Helper()

	cmd, err := commands.NewRecordStockValidationCommand(orderID, kernel.NewUUID(), success)
	require.NoError(t, err)
	return cmd
}

func TestRecordStockValidationCommandHandler_Handle_AllLinesValidatedAdvances(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t) // two lines
	orderID := aggregate.ID()

	lines := new(MockOrderRepository)
	lines.On("CountLines", mock.Anything, orderID).Return(2, nil).Once()
	aggregator := services.NewValidationAggregator(lines)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyStateChanged", mock.Anything, aggregate, "").Return(nil).Once()

	h := commands.NewRecordStockValidationCommandHandler(factory, aggregator, notifier, discardLogger())

	// first result keeps the order pending, nothing is touched
	require.NoError(t, h.Handle(ctx, validationCommand(t, orderID, true)))
	factory.AssertNotCalled(t, "Create")

	// final result advances the order to Processing
	require.NoError(t, h.Handle(ctx, validationCommand(t, orderID, true)))
	assert.Equal(t, order.Processing, aggregate.Status())

	lines.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRecordStockValidationCommandHandler_Handle_FailedLineCancels(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	orderID := aggregate.ID()

	lines := new(MockOrderRepository)
	lines.On("CountLines", mock.Anything, orderID).Return(2, nil).Once()
	aggregator := services.NewValidationAggregator(lines)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyCancelled", mock.Anything, aggregate, "insufficient stock").Return(nil).Once()

	h := commands.NewRecordStockValidationCommandHandler(factory, aggregator, notifier, discardLogger())

	require.NoError(t, h.Handle(ctx, validationCommand(t, orderID, false)))
	assert.Equal(t, order.Cancelled, aggregate.Status())

	// duplicate delivery of the failure is a no-op
	require.NoError(t, h.Handle(ctx, validationCommand(t, orderID, false)))

	lines.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRecordStockValidationCommandHandler_Handle_LateSuccessAfterCancelIsIgnored(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	orderID := aggregate.ID()

	lines := new(MockOrderRepository)
	lines.On("CountLines", mock.Anything, orderID).Return(2, nil).Once()
	aggregator := services.NewValidationAggregator(lines)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyCancelled", mock.Anything, aggregate, "insufficient stock").Return(nil).Once()

	h := commands.NewRecordStockValidationCommandHandler(factory, aggregator, notifier, discardLogger())

	require.NoError(t, h.Handle(ctx, validationCommand(t, orderID, true)))
	require.NoError(t, h.Handle(ctx, validationCommand(t, orderID, false)))
	assert.Equal(t, order.Cancelled, aggregate.Status())

	// the remaining success arrives late and must not advance the order
	require.NoError(t, h.Handle(ctx, validationCommand(t, orderID, true)))
	assert.Equal(t, order.Cancelled, aggregate.Status())

	notifier.AssertNotCalled(t, "NotifyStateChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordStockValidationCommandHandler_Handle_CountLinesError(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	lines := new(MockOrderRepository)
	lines.On("CountLines", mock.Anything, orderID).Return(0, errors.New("db down")).Once()
	aggregator := services.NewValidationAggregator(lines)

	factory := new(MockOrderUoWFactory)

	h := commands.NewRecordStockValidationCommandHandler(factory, aggregator, new(MockNotifier), discardLogger())
	err := h.Handle(ctx, validationCommand(t, orderID, true))
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestRecordStockValidationCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	aggregator := services.NewValidationAggregator(new(MockOrderRepository))

	h := commands.NewRecordStockValidationCommandHandler(
		new(MockOrderUoWFactory), aggregator, new(MockNotifier), discardLogger(),
	)
	err := h.Handle(ctx, commands.RecordStockValidationCommand{})
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRecordStockValidationCommandIsNotConstructed)
}
