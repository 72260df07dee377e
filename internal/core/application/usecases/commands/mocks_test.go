package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now     = time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	clk     = clock.Fixed{At: now}
	taxRate = decimal.RequireFromString("0.1")
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockDispatchRepository struct{ mock.Mock }

func (m *MockDispatchRepository) Add(ctx context.Context, d *dispatch.Dispatch) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDispatchRepository) Update(ctx context.Context, d *dispatch.Dispatch) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDispatchRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*dispatch.Dispatch)
	return d, args.Error(1)
}

func (m *MockDispatchRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*dispatch.Dispatch)
	return d, args.Error(1)
}

func (m *MockDispatchRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*dispatch.Dispatch, error) {
	args := m.Called(ctx, shipmentID)
	d, _ := args.Get(0).(*dispatch.Dispatch)
	return d, args.Error(1)
}

func (m *MockDispatchRepository) Delete(ctx context.Context, d *dispatch.Dispatch) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockBundleRepository struct{ mock.Mock }

func (m *MockBundleRepository) Add(ctx context.Context, b *settlement.Bundle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBundleRepository) Update(ctx context.Context, b *settlement.Bundle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBundleRepository) Get(ctx context.Context, id kernel.UUID) (*settlement.Bundle, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*settlement.Bundle)
	return b, args.Error(1)
}

func (m *MockBundleRepository) GetByItem(
	ctx context.Context,
	direction settlement.Direction,
	itemID kernel.UUID,
) (*settlement.Bundle, error) {
	args := m.Called(ctx, direction, itemID)
	b, _ := args.Get(0).(*settlement.Bundle)
	return b, args.Error(1)
}

func (m *MockBundleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*settlement.Bundle, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*settlement.Bundle)
	return b, args.Error(1)
}

func (m *MockBundleRepository) GetByItemForUpdate(
	ctx context.Context,
	direction settlement.Direction,
	itemID kernel.UUID,
) (*settlement.Bundle, error) {
	args := m.Called(ctx, direction, itemID)
	b, _ := args.Get(0).(*settlement.Bundle)
	return b, args.Error(1)
}

func (m *MockBundleRepository) Delete(ctx context.Context, b *settlement.Bundle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBundleRepository) IsShipmentBundled(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	args := m.Called(ctx, shipmentID)
	return args.Bool(0), args.Error(1)
}

type MockEligibleItemRepository struct{ mock.Mock }

func (m *MockEligibleItemRepository) List(
	ctx context.Context,
	direction settlement.Direction,
	filter ports.EligibilityFilter,
	page ports.Page,
) ([]settlement.EligibleItem, error) {
	args := m.Called(ctx, direction, filter, page)
	items, _ := args.Get(0).([]settlement.EligibleItem)
	return items, args.Error(1)
}

func (m *MockEligibleItemRepository) Summarize(
	ctx context.Context,
	direction settlement.Direction,
	filter ports.EligibilityFilter,
) (ports.EligibleSummary, error) {
	args := m.Called(ctx, direction, filter)
	return args.Get(0).(ports.EligibleSummary), args.Error(1)
}

func (m *MockEligibleItemRepository) Find(
	ctx context.Context,
	direction settlement.Direction,
	ids []kernel.UUID,
	exceptBundle *kernel.UUID,
) ([]settlement.EligibleItem, error) {
	args := m.Called(ctx, direction, ids, exceptBundle)
	items, _ := args.Get(0).([]settlement.EligibleItem)
	return items, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, events []kernel.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

func (m *MockOutboxRepository) DeletePublishedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

type MockPartyDirectory struct{ mock.Mock }

func (m *MockPartyDirectory) Resolve(ctx context.Context, kind kernel.PartyKind, id kernel.UUID) (kernel.Snapshot, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(kernel.Snapshot), args.Error(1)
}

// MockUoW serves every unit of work shape used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) DispatchRepository() ports.DispatchRepository {
	args := m.Called()
	return args.Get(0).(ports.DispatchRepository)
}

func (m *MockUoW) BundleRepository() ports.BundleRepository {
	args := m.Called()
	return args.Get(0).(ports.BundleRepository)
}

func (m *MockUoW) EligibleItemRepository() ports.EligibleItemRepository {
	args := m.Called()
	return args.Get(0).(ports.EligibleItemRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockBundleUoWFactory struct{ mock.Mock }

func (m *MockBundleUoWFactory) Create() commands.BundleUoW {
	args := m.Called()
	return args.Get(0).(commands.BundleUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

// world wires one MockUoW with every repository and hands it out from all factories.
type world struct {
	uow       *MockUoW
	shipments *MockShipmentRepository
	dispatch  *MockDispatchRepository
	bundles   *MockBundleRepository
	eligible  *MockEligibleItemRepository
	outbox    *MockOutboxRepository
	directory *MockPartyDirectory

	shipmentFactory *MockShipmentUoWFactory
	dispatchFactory *MockDispatchUoWFactory
	bundleFactory   *MockBundleUoWFactory
	outboxFactory   *MockOutboxUoWFactory
}

func newWorld() *world {
	w := &world{
		uow:             new(MockUoW),
		shipments:       new(MockShipmentRepository),
		dispatch:        new(MockDispatchRepository),
		bundles:         new(MockBundleRepository),
		eligible:        new(MockEligibleItemRepository),
		outbox:          new(MockOutboxRepository),
		directory:       new(MockPartyDirectory),
		shipmentFactory: new(MockShipmentUoWFactory),
		dispatchFactory: new(MockDispatchUoWFactory),
		bundleFactory:   new(MockBundleUoWFactory),
		outboxFactory:   new(MockOutboxUoWFactory),
	}
	w.uow.On("ShipmentRepository").Return(w.shipments).Maybe()
	w.uow.On("DispatchRepository").Return(w.dispatch).Maybe()
	w.uow.On("BundleRepository").Return(w.bundles).Maybe()
	w.uow.On("EligibleItemRepository").Return(w.eligible).Maybe()
	w.uow.On("OutboxRepository").Return(w.outbox).Maybe()
	w.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	w.shipmentFactory.On("Create").Return(w.uow).Maybe()
	w.dispatchFactory.On("Create").Return(w.uow).Maybe()
	w.bundleFactory.On("Create").Return(w.uow).Maybe()
	w.outboxFactory.On("Create").Return(w.uow).Maybe()
	return w
}

func (w *world) begins() {
	w.uow.On("Begin", mock.Anything).Return(nil).Once()
}

func (w *world) commits() {
	w.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (w *world) assertExpectations(t *testing.T) {
	t.Helper()
	w.uow.AssertExpectations(t)
	w.shipments.AssertExpectations(t)
	w.dispatch.AssertExpectations(t)
	w.bundles.AssertExpectations(t)
	w.eligible.AssertExpectations(t)
	w.outbox.AssertExpectations(t)
	w.directory.AssertExpectations(t)
}

func newActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), "dispatcher")
	require.NoError(t, err)
	return actor
}

func newCompany(t *testing.T, name string) kernel.Snapshot {
	t.Helper()
	s, err := kernel.NewSnapshot(kernel.NewUUID(), kernel.PartyCompany, kernel.SnapshotFields{Name: name})
	require.NoError(t, err)
	return s
}

func newDriver(t *testing.T) kernel.Snapshot {
	t.Helper()
	s, err := kernel.NewSnapshot(kernel.NewUUID(), kernel.PartyDriver, kernel.SnapshotFields{
		Name:  "Kim",
		Phone: "010-1111-2222",
	})
	require.NoError(t, err)
	return s
}

func newVehicle(t *testing.T) kernel.Vehicle {
	t.Helper()
	v, err := kernel.NewVehicle("80ba1234", "wing body", decimal.NewFromInt(5))
	require.NoError(t, err)
	return v
}

func newPlaces(t *testing.T) (kernel.Place, kernel.Place) {
	t.Helper()
	pickup, err := kernel.NewPlace("Busan new port", "Park", "010-1234-5678", now.Add(24*time.Hour))
	require.NoError(t, err)
	delivery, err := kernel.NewPlace("Icheon center", "", "", now.Add(30*time.Hour))
	require.NoError(t, err)
	return pickup, delivery
}

// restoreShipment builds a persisted shipment in flow status.
func restoreShipment(t *testing.T, owner kernel.Snapshot, flow shipment.FlowStatus) *shipment.Shipment {
	t.Helper()
	pickup, delivery := newPlaces(t)
	s, err := shipment.RestoreShipment(kernel.NewUUID(), owner, shipment.Details{
		Pickup:      pickup,
		Delivery:    delivery,
		Cargo:       "pallets",
		VehicleType: "wing body",
		Tonnage:     decimal.NewFromInt(5),
		Charge:      decimal.NewFromInt(100000),
	}, flow, nil, kernel.NewAudit(newActor(t), now.Add(-time.Hour)))
	require.NoError(t, err)
	return s
}

func restoreDispatch(t *testing.T, shipmentID kernel.UUID, carrier kernel.Snapshot, status dispatch.Status) *dispatch.Dispatch {
	t.Helper()
	driver := newDriver(t)
	vehicle := newVehicle(t)
	d, err := dispatch.RestoreDispatch(
		kernel.NewUUID(),
		shipmentID,
		carrier,
		nil,
		&driver,
		&vehicle,
		decimal.NewFromInt(80000),
		"",
		status,
		kernel.NewAudit(newActor(t), now.Add(-time.Hour)),
	)
	require.NoError(t, err)
	return d
}

func eligibleItem(shipper, carrier kernel.Snapshot, charge, cost int64, day int) settlement.EligibleItem {
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

func newBundle(
	t *testing.T,
	direction settlement.Direction,
	counterparty kernel.Snapshot,
	items ...settlement.EligibleItem,
) *settlement.Bundle {
	t.Helper()
	b, err := settlement.NewBundle(
		kernel.NewUUID(),
		direction,
		items,
		settlement.Form{Counterparty: counterparty, PaymentMethod: "transfer"},
		taxRate,
		newActor(t),
		now,
	)
	require.NoError(t, err)
	return b
}

func requireAmount(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}
