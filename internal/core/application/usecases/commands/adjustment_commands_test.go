package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdjustmentCommand_Success(t *testing.T) {
	// Act
	cmd, err := commands.NewAdjustmentCommand(kernel.NewUUID(), kernel.NewUUID(), commands.AdjustmentForm{
		Amount:      decimal.NewFromInt(-3000),
		Category:    string(settlement.CategoryDiscount),
		Description: "loyalty",
	}, newActor(t))

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, cmd)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, settlement.CategoryDiscount, cmd.Input().Category)
}

func TestNewAdjustmentCommand_CategoryIsRequired(t *testing.T) {
	_, err := commands.NewAdjustmentCommand(kernel.NewUUID(), kernel.NewUUID(), commands.AdjustmentForm{
		Amount: decimal.NewFromInt(100),
	}, newActor(t))
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestAdjustmentCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.AdjustmentCommand

	// Act
	err := cmd.Validate()

	// Assert
	require.ErrorIs(t, err, commands.ErrAdjustmentCommandIsNotConstructed)
}

func TestNewRemoveAdjustmentCommand_Success(t *testing.T) {
	// Act
	cmd, err := commands.NewRemoveAdjustmentCommand(kernel.NewUUID(), kernel.NewUUID(), newActor(t))

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, cmd)
	require.NoError(t, cmd.Validate())
}

func TestRemoveAdjustmentCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.RemoveAdjustmentCommand

	// Act
	err := cmd.Validate()

	// Assert
	require.ErrorIs(t, err, commands.ErrRemoveAdjustmentCommandIsNotConstructed)
}
