// Package pgtest starts a disposable PostgreSQL for integration suites and
// seeds the records they share.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/directoryrepo"
	"freight/internal/adapters/out/postgres/dispatchrepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Start runs postgres:15-alpine and returns a migrated connection.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return container, nil, err
	}

	if err = postgres_adapter.Migrate(db); err != nil {
		return container, nil, err
	}
	return container, db, nil
}

func Truncate(db *gorm.DB) error {
	return db.Exec(fmt.Sprintf("TRUNCATE TABLE %s", strings.Join(postgres_adapter.Tables(), ", "))).Error
}

// NopTracker satisfies the repositories' aggregate tracker outside a unit of work.
type NopTracker struct{}

func (NopTracker) TrackAggregate(kernel.UUID, any) {}

// Seeder writes directory entries and shipments straight through the repositories.
type Seeder struct {
	DB    *gorm.DB
	Actor kernel.Actor
	Now   time.Time
}

func NewSeeder(t testing.TB, db *gorm.DB) Seeder {
	actor, err := kernel.NewActor(kernel.NewUUID(), "Operator")
	require.NoError(t, err)
	return Seeder{
		DB:    db,
		Actor: actor,
		Now:   time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s Seeder) Company(t testing.TB, name string) kernel.Snapshot {
	id := kernel.NewUUID()
	require.NoError(t, s.DB.Create(&directoryrepo.CompanyDTO{
		ID:             id.Bytes(),
		Name:           name,
		Phone:          "02-000-0000",
		Address:        name + " HQ",
		BusinessNumber: "123-45-67890",
	}).Error)

	snapshot, err := kernel.NewSnapshot(id, kernel.PartyCompany, kernel.SnapshotFields{
		Name:           name,
		Phone:          "02-000-0000",
		Address:        name + " HQ",
		BusinessNumber: "123-45-67890",
	})
	require.NoError(t, err)
	return snapshot
}

func (s Seeder) Driver(t testing.TB, name string) kernel.Snapshot {
	id := kernel.NewUUID()
	require.NoError(t, s.DB.Create(&directoryrepo.DriverDTO{
		ID:    id.Bytes(),
		Name:  name,
		Phone: "010-1111-2222",
	}).Error)

	snapshot, err := kernel.NewSnapshot(id, kernel.PartyDriver, kernel.SnapshotFields{
		Name:  name,
		Phone: "010-1111-2222",
	})
	require.NoError(t, err)
	return snapshot
}

// Shipment builds an unsaved shipment picked up on the given day of April 2026.
func (s Seeder) Shipment(t testing.TB, owner kernel.Snapshot, charge int64, day int) *shipment.Shipment {
	pickup, err := kernel.NewPlace("Busan port gate 3", "Kim", "010-2222-3333", time.Date(2026, 4, day, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	delivery, err := kernel.NewPlace("Seoul logistics center", "Lee", "010-4444-5555", time.Date(2026, 4, day, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	sh, err := shipment.NewShipment(kernel.NewUUID(), owner, shipment.Details{
		Pickup:      pickup,
		Delivery:    delivery,
		Cargo:       "steel coils",
		VehicleType: "cargo",
		Tonnage:     decimal.NewFromInt(5),
		Charge:      decimal.NewFromInt(charge),
	}, s.Actor, s.Now)
	require.NoError(t, err)
	return sh
}

// Dispatch builds an unsaved dispatch of sh handled by carrier.
func (s Seeder) Dispatch(t testing.TB, sh *shipment.Shipment, carrier, driver kernel.Snapshot, cost int64) *dispatch.Dispatch {
	vehicle, err := kernel.NewVehicle("12A 3456", "wing", decimal.NewFromInt(5))
	require.NoError(t, err)

	d, err := dispatch.NewDispatch(kernel.NewUUID(), sh.ID(), dispatch.Assignment{
		Counterparty: carrier,
		Driver:       driver,
		Vehicle:      vehicle,
		AgreedPrice:  decimal.NewFromInt(cost),
	}, s.Actor, s.Now)
	require.NoError(t, err)
	return d
}

// CompletedShipment stores a shipment and its dispatch, both completed, which makes
// the shipment settle-eligible in both directions.
func (s Seeder) CompletedShipment(
	t testing.TB,
	owner, carrier, driver kernel.Snapshot,
	charge, cost int64,
	day int,
) (*shipment.Shipment, *dispatch.Dispatch) {
	ctx := context.Background()
	sh := s.Shipment(t, owner, charge, day)
	d := s.Dispatch(t, sh, carrier, driver, cost)
	require.NoError(t, sh.AdvanceTo(shipment.Completed, s.Actor, s.Now))
	require.NoError(t, d.ChangeStatus(dispatch.Completed))

	require.NoError(t, shipmentrepo.NewGormShipmentRepository(s.DB, NopTracker{}).Add(ctx, sh))
	require.NoError(t, dispatchrepo.NewGormDispatchRepository(s.DB, NopTracker{}).Add(ctx, d))
	return sh, d
}
