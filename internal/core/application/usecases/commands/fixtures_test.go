package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type dispatchFixture struct {
	w        *world
	shipper  kernel.Snapshot
	carrier  kernel.Snapshot
	driver   kernel.Snapshot
	shipment *shipment.Shipment
	actor    kernel.Actor
}

func newDispatchFixture(t *testing.T, flow shipment.FlowStatus) dispatchFixture {
	t.Helper()
	shipper := newCompany(t, "Shipper Co")
	return dispatchFixture{
		w:        newWorld(),
		shipper:  shipper,
		carrier:  newCompany(t, "Carrier Co"),
		driver:   newDriver(t),
		shipment: restoreShipment(t, shipper, flow),
		actor:    newActor(t),
	}
}

func (f dispatchFixture) createCommand(t *testing.T) commands.CreateDispatchCommand {
	t.Helper()
	cmd, err := commands.NewCreateDispatchCommand(kernel.NewUUID(), f.shipment.ID(), f.carrier.ID(), nil,
		f.driver.ID(), newVehicle(t), decimal.NewFromInt(80000), "fragile", f.actor)
	require.NoError(t, err)
	return cmd
}

type bundleFixture struct {
	w       *world
	shipper kernel.Snapshot
	carrier kernel.Snapshot
	actor   kernel.Actor
	i1      settlement.EligibleItem
	i2      settlement.EligibleItem
}

func newBundleFixture(t *testing.T) bundleFixture {
	t.Helper()
	shipper := newCompany(t, "Shipper Co")
	carrier := newCompany(t, "Carrier Co")
	return bundleFixture{
		w:       newWorld(),
		shipper: shipper,
		carrier: carrier,
		actor:   newActor(t),
		i1:      eligibleItem(shipper, carrier, 100000, 80000, 3),
		i2:      eligibleItem(shipper, carrier, 50000, 40000, 17),
	}
}

func (f bundleFixture) form() commands.BundleForm {
	return commands.BundleForm{
		Counterparty:  commands.PartyFields{ID: f.shipper.ID(), Name: f.shipper.Name()},
		PaymentMethod: "transfer",
	}
}

func (f bundleFixture) bundle(t *testing.T) *settlement.Bundle {
	t.Helper()
	return newBundle(t, settlement.Receivable, f.shipper, f.i1, f.i2)
}
