// Package commands contains business operations that modify system state.
// Every command is a validated value object; its handler runs the operation inside
// one unit of work so either all of its writes commit or none do.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	DispatchRepoFactory interface {
		DispatchRepository() ports.DispatchRepository
	}

	BundleRepoFactory interface {
		BundleRepository() ports.BundleRepository
	}

	EligibleItemRepoFactory interface {
		EligibleItemRepository() ports.EligibleItemRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// DispatchUoW manages transactions that change a dispatch together with its shipment.
	// Bundle access is read-only and used to refuse releasing settled work.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   shipment, err := uow.ShipmentRepository().GetForUpdate(ctx, shipmentID)
	//   // ... coordinate dispatch and shipment
	//
	//   err = uow.Commit(ctx)
	DispatchUoW interface {
		TxManager
		ShipmentRepoFactory
		DispatchRepoFactory
		BundleRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// BundleUoW manages transactions over settlement bundles and the eligible pool.
	BundleUoW interface {
		TxManager
		BundleRepoFactory
		EligibleItemRepoFactory
	}

	BundleUoWFactory interface {
		Create() BundleUoW
	}

	// OutboxUoW holds the outbox rows it relays locked until they are marked published.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
