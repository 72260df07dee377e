package settlement_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	now     = time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	taxRate = decimal.RequireFromString("0.1")
)

type fixture struct {
	shipper kernel.Snapshot
	carrier kernel.Snapshot
	actor   kernel.Actor
	i1      settlement.EligibleItem
	i2      settlement.EligibleItem
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	shipper, err := kernel.NewSnapshot(kernel.NewUUID(), kernel.PartyCompany, kernel.SnapshotFields{Name: "Shipper Co"})
	require.NoError(t, err)
	carrier, err := kernel.NewSnapshot(kernel.NewUUID(), kernel.PartyCompany, kernel.SnapshotFields{Name: "Carrier Co"})
	require.NoError(t, err)
	actor, err := kernel.NewActor(kernel.NewUUID(), "accountant")
	require.NoError(t, err)

	item := func(charge, cost int64, day int) settlement.EligibleItem {
		return settlement.EligibleItem{
			ShipmentID:  kernel.NewUUID(),
			DispatchID:  kernel.NewUUID(),
			ShipperID:   shipper.ID(),
			ShipperName: shipper.Name(),
			CarrierID:   carrier.ID(),
			CarrierName: carrier.Name(),
			Charge:      decimal.NewFromInt(charge),
			Cost:        decimal.NewFromInt(cost),
			Date:        time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC),
		}
	}

	return fixture{
		shipper: shipper,
		carrier: carrier,
		actor:   actor,
		i1:      item(100000, 80000, 3),
		i2:      item(50000, 40000, 17),
	}
}

func (f fixture) counterparty(direction settlement.Direction) kernel.Snapshot {
	if direction == settlement.Payable {
		return f.carrier
	}
	return f.shipper
}

func (f fixture) bundle(t *testing.T, direction settlement.Direction, items ...settlement.EligibleItem) *settlement.Bundle {
	t.Helper()
	if len(items) == 0 {
		items = []settlement.EligibleItem{f.i1, f.i2}
	}
	b, err := settlement.NewBundle(
		kernel.NewUUID(),
		direction,
		items,
		settlement.Form{Counterparty: f.counterparty(direction), PaymentMethod: "transfer"},
		taxRate,
		f.actor,
		now,
	)
	require.NoError(t, err)
	return b
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func requireTotals(t *testing.T, b *settlement.Bundle, base, bundleAdj, itemAdj, tax, grand int64) {
	t.Helper()
	totals := b.Totals()
	require.True(t, amount(base).Equal(totals.Base), "base %s", totals.Base)
	require.True(t, amount(bundleAdj).Equal(totals.BundleAdjustments), "bundle adjustments %s", totals.BundleAdjustments)
	require.True(t, amount(itemAdj).Equal(totals.ItemAdjustments), "item adjustments %s", totals.ItemAdjustments)
	require.True(t, amount(tax).Equal(totals.Tax), "tax %s", totals.Tax)
	require.True(t, amount(grand).Equal(totals.Grand), "grand %s", totals.Grand)
	require.True(t, totals.IsConsistent())
}
