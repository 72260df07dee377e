package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAcceptShipmentCommand_Success(t *testing.T) {
	// Act
	cmd, err := commands.NewAcceptShipmentCommand(kernel.NewUUID(), newActor(t))

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, cmd)
	require.NoError(t, cmd.Validate())
}

func TestNewAcceptShipmentCommand_InvalidArgs(t *testing.T) {
	// Act
	_, err := commands.NewAcceptShipmentCommand(kernel.UUID{}, kernel.Actor{})

	// Assert
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestAcceptShipmentCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.AcceptShipmentCommand

	// Act
	err := cmd.Validate()

	// Assert
	require.ErrorIs(t, err, commands.ErrAcceptShipmentCommandIsNotConstructed)
}

func TestNewCancelShipmentCommand_Success(t *testing.T) {
	// Act
	cmd, err := commands.NewCancelShipmentCommand(kernel.NewUUID(), newActor(t))

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, cmd)
	require.NoError(t, cmd.Validate())
}

func TestCancelShipmentCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.CancelShipmentCommand

	// Act
	err := cmd.Validate()

	// Assert
	require.ErrorIs(t, err, commands.ErrCancelShipmentCommandIsNotConstructed)
}
