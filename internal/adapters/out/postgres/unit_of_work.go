// Package postgres provides the GORM-based Unit of Work and the schema migration.
//
// A unit of work spans one database transaction. Repositories obtained from it
// after Begin share that transaction and report every aggregate they save back to
// it. On Commit the domain events those aggregates recorded are written to the
// outbox inside the same transaction, so a state change and its events are stored
// together or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, invalidateCache)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
//	    return err
//	}
//	if err := uow.DispatchRepository().Add(ctx, d); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction; goroutines must not share it
//   - Transactions run at READ COMMITTED; repositories lock the rows they decide on
//     (GetForUpdate, EligibleItemRepository.Find) and rely on unique indexes for
//     membership and one-dispatch-per-shipment
package postgres

import (
	"context"
	"database/sql"

	"freight/internal/adapters/out/postgres/bundlerepo"
	"freight/internal/adapters/out/postgres/dispatchrepo"
	"freight/internal/adapters/out/postgres/eligiblerepo"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// CommitHook runs after a successful commit with the events that were stored.
// Hooks cannot fail the operation; they log what they cannot do.
type CommitHook func(ctx context.Context, events []kernel.DomainEvent)

// trackedAggregate represents an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Every created instance runs the factory's commit hooks.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	hooks []CommitHook
}

func NewGormUnitOfWorkFactory(db *gorm.DB, hooks ...CommitHook) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:    db,
		hooks: hooks,
	}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		hooks:             f.hooks,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates saved in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	hooks             []CommitHook
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit stores the pending domain events of every tracked aggregate in the outbox,
// commits, and then runs the commit hooks.
//
// When the outbox write fails the transaction stays open so the caller's deferred
// Rollback can close it.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	events := uow.pullEvents()
	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, events); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return err
	}

	for _, hook := range uow.hooks {
		hook(ctx, events)
	}
	return nil
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction when none
// is open, which is the normal outcome of a deferred Rollback after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DispatchRepository() ports.DispatchRepository {
	return dispatchrepo.NewGormDispatchRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BundleRepository() ports.BundleRepository {
	return bundlerepo.NewGormBundleRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) EligibleItemRepository() ports.EligibleItemRepository {
	return eligiblerepo.NewGormEligibleItemRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate saved within this unit of work.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn is the open transaction, or the plain connection outside of one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// pullEvents drains the tracked aggregates in tracking order. An aggregate tracked
// twice yields its events once because pulling clears its buffer.
func (uow *GormUnitOfWork) pullEvents() []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(kernel.EventSource)
		if !ok {
			continue
		}
		events = append(events, source.PullEvents()...)
	}
	return events
}
