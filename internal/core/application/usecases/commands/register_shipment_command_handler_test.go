package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	w := newWorld()
	owner := newCompany(t, "Shipper Co")
	pickup, delivery := newPlaces(t)

	cmd, err := commands.NewRegisterShipmentCommand(kernel.NewUUID(), owner.ID(), pickup, delivery,
		"pallets", "wing body", decimal.NewFromInt(5), decimal.NewFromInt(100000), newActor(t))
	require.NoError(t, err)

	w.directory.On("Resolve", mock.Anything, kernel.PartyCompany, owner.ID()).Return(owner, nil).Once()
	w.begins()
	w.shipments.On("Add", mock.Anything, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.ID().IsEqual(cmd.ShipmentID()) && s.FlowStatus() == shipment.Requested && s.Owner().Equal(owner)
	})).Return(nil).Once()
	w.commits()

	h := commands.NewRegisterShipmentCommandHandler(w.shipmentFactory, w.directory, clk)
	require.NoError(t, h.Handle(ctx, cmd))
	w.assertExpectations(t)
}

func TestRegisterShipmentCommandHandler_Handle_UnknownOwner(t *testing.T) {
	ctx := t.Context()
	w := newWorld()
	ownerID := kernel.NewUUID()
	pickup, delivery := newPlaces(t)

	cmd, err := commands.NewRegisterShipmentCommand(kernel.NewUUID(), ownerID, pickup, delivery,
		"pallets", "wing body", decimal.NewFromInt(5), decimal.NewFromInt(100000), newActor(t))
	require.NoError(t, err)

	w.directory.On("Resolve", mock.Anything, kernel.PartyCompany, ownerID).
		Return(kernel.Snapshot{}, errs.NewObjectNotFoundError("company", ownerID)).Once()

	h := commands.NewRegisterShipmentCommandHandler(w.shipmentFactory, w.directory, clk)
	err = h.Handle(ctx, cmd)
	assert.Equal(t, errs.KindInvalidReference, errs.KindOf(err))
	w.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestRegisterShipmentCommandHandler_Handle_NotConstructed(t *testing.T) {
	w := newWorld()
	h := commands.NewRegisterShipmentCommandHandler(w.shipmentFactory, w.directory, clk)
	err := h.Handle(t.Context(), commands.RegisterShipmentCommand{})
	require.ErrorIs(t, err, commands.ErrRegisterShipmentCommandIsNotConstructed)
	w.directory.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}
