package commands_test

import (
	"testing"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/commands"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"
	"github.com/srCochayuyo/censudex-orders-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStateCommand_ValidInput(t *testing.T) {
	identifier, err := order.ParseIdentifier("CEN-4821")
	require.NoError(t, err)

	cmd, err := commands.NewChangeOrderStateCommand(identifier, order.Shipped, "TRACK-99")
	require.NoError(t, err)
	assert.Equal(t, "CEN-4821", cmd.Identifier().Number())
	assert.Equal(t, order.Shipped, cmd.Target())
	assert.Equal(t, "TRACK-99", cmd.TrackingNumber())
}

func TestNewChangeOrderStateCommand_EmptyIdentifier(t *testing.T) {
	_, err := commands.NewChangeOrderStateCommand(order.Identifier{}, order.Shipped, "TRACK-99")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewChangeOrderStateCommand_UnknownStatus(t *testing.T) {
	identifier, err := order.ParseIdentifier("CEN-4821")
	require.NoError(t, err)

	_, err = commands.NewChangeOrderStateCommand(identifier, order.Status(42), "")
	require.Error(t, err)
}

func TestChangeOrderStateCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.ChangeOrderStateCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrChangeOrderStateCommandIsNotConstructed)
}
