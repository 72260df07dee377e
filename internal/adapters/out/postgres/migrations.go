package postgres

import (
	"fmt"

	"freight/internal/adapters/out/postgres/bundlerepo"
	"freight/internal/adapters/out/postgres/directoryrepo"
	"freight/internal/adapters/out/postgres/dispatchrepo"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns or reads, in creation order.
func Models() []any {
	return []any{
		&directoryrepo.CompanyDTO{},
		&directoryrepo.UserDTO{},
		&directoryrepo.DriverDTO{},
		&shipmentrepo.ShipmentDTO{},
		&dispatchrepo.DispatchDTO{},
		&bundlerepo.BundleDTO{},
		&bundlerepo.ItemDTO{},
		&bundlerepo.AdjustmentDTO{},
		&bundlerepo.RevisionDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// indexes are the ones gorm tags cannot express.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS ix_shipments_eligible
		ON shipments (pickup_scheduled_at, id)
		WHERE canceled_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS ix_outbox_messages_unpublished
		ON outbox_messages (occurred_at, id)
		WHERE published_at IS NULL`,
}

// Migrate brings the schema up to date. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// Tables lists the table names in an order TRUNCATE accepts.
func Tables() []string {
	return []string{
		"outbox_messages",
		"bundle_revisions",
		"bundle_adjustments",
		"bundle_items",
		"bundles",
		"dispatches",
		"shipments",
		"drivers",
		"users",
		"companies",
	}
}
