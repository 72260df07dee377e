// Package bundlerepo persists settlement bundles. A bundle spans four tables:
// the bundle row with its stored totals, its members, its adjustments and its revisions.
package bundlerepo

import (
	"time"

	"freight/internal/adapters/out/postgres/columns"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// BundleDTO stores the totals next to their inputs so listings can read them
// without recomputation. They are recomputed on every load.
type BundleDTO struct {
	ID                uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Direction         string        `gorm:"size:20;index"`
	Status            string        `gorm:"size:20;index"`
	Counterparty      columns.Party `gorm:"embedded;embeddedPrefix:counterparty_"`
	Manager           columns.Party `gorm:"embedded;embeddedPrefix:manager_"`
	PeriodStart       time.Time     `gorm:"type:date"`
	PeriodEnd         time.Time     `gorm:"type:date"`
	TaxExempt         bool
	TaxRate           decimal.Decimal `gorm:"type:numeric(6,4)"`
	PaymentMethod     string          `gorm:"size:50"`
	BankName          string          `gorm:"size:100"`
	BankAccountNumber string          `gorm:"size:100"`
	BankAccountHolder string          `gorm:"size:200"`
	DueDate           *time.Time      `gorm:"type:date"`
	Memo              string          `gorm:"size:2000"`
	BaseTotal         decimal.Decimal `gorm:"type:numeric(18,2)"`
	BundleAdjustments decimal.Decimal `gorm:"type:numeric(18,2)"`
	ItemAdjustments   decimal.Decimal `gorm:"type:numeric(18,2)"`
	Tax               decimal.Decimal `gorm:"type:numeric(18,2)"`
	GrandTotal        decimal.Decimal `gorm:"type:numeric(18,2)"`
	Audit             columns.Audit   `gorm:"embedded"`
}

func (BundleDTO) TableName() string {
	return "bundles"
}

// ItemDTO binds a shipment to a bundle. The unique (direction, shipment_id)
// index is what keeps a shipment in at most one bundle per direction.
type ItemDTO struct {
	BundleID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentID     uuid.UUID       `gorm:"type:uuid;primaryKey;uniqueIndex:ux_bundle_items_direction_shipment,priority:2"`
	Direction      string          `gorm:"size:20;uniqueIndex:ux_bundle_items_direction_shipment,priority:1"`
	DispatchID     uuid.UUID       `gorm:"type:uuid"`
	CounterpartyID uuid.UUID       `gorm:"type:uuid;index"`
	Charge         decimal.Decimal `gorm:"type:numeric(18,2)"`
	Cost           decimal.Decimal `gorm:"type:numeric(18,2)"`
	Date           time.Time
	Position       int
}

func (ItemDTO) TableName() string {
	return "bundle_items"
}

// AdjustmentDTO holds both scopes; ItemID is set for item-scoped rows.
type AdjustmentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BundleID    uuid.UUID       `gorm:"type:uuid;index"`
	ItemID      *uuid.UUID      `gorm:"type:uuid"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2)"`
	Category    string          `gorm:"size:50"`
	Description string          `gorm:"size:500"`
	Position    int
	Audit       columns.Audit `gorm:"embedded"`
}

func (AdjustmentDTO) TableName() string {
	return "bundle_adjustments"
}

type RevisionDTO struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	BundleID  uuid.UUID `gorm:"type:uuid;index"`
	At        time.Time
	ActorID   uuid.UUID      `gorm:"type:uuid"`
	ActorName string         `gorm:"size:200"`
	Reason    string         `gorm:"size:500"`
	Fields    pq.StringArray `gorm:"type:text[]"`
	Position  int
}

func (RevisionDTO) TableName() string {
	return "bundle_revisions"
}

// record is a bundle with all of its child rows.
type record struct {
	bundle      BundleDTO
	items       []ItemDTO
	adjustments []AdjustmentDTO
	revisions   []RevisionDTO
}

func fromDomain(b *settlement.Bundle) record {
	form := b.Form()
	totals := b.Totals()
	period := b.Period()
	id := b.ID().Bytes()

	rec := record{
		bundle: BundleDTO{
			ID:                id,
			Direction:         b.Direction().String(),
			Status:            b.Status().String(),
			Counterparty:      columns.FromSnapshot(&form.Counterparty),
			Manager:           columns.FromSnapshot(form.Manager),
			PeriodStart:       period.Start(),
			PeriodEnd:         period.End(),
			TaxExempt:         form.TaxExempt,
			TaxRate:           b.TaxRate(),
			PaymentMethod:     form.PaymentMethod,
			BankName:          form.Bank.BankName,
			BankAccountNumber: form.Bank.AccountNumber,
			BankAccountHolder: form.Bank.AccountHolder,
			DueDate:           form.DueDate,
			Memo:              form.Memo,
			BaseTotal:         totals.Base,
			BundleAdjustments: totals.BundleAdjustments,
			ItemAdjustments:   totals.ItemAdjustments,
			Tax:               totals.Tax,
			GrandTotal:        totals.Grand,
			Audit:             columns.FromAudit(b.Audit()),
		},
	}

	for i, item := range b.Items() {
		rec.items = append(rec.items, ItemDTO{
			BundleID:       id,
			ShipmentID:     item.ID().Bytes(),
			Direction:      b.Direction().String(),
			DispatchID:     item.DispatchID().Bytes(),
			CounterpartyID: item.CounterpartyID().Bytes(),
			Charge:         item.Charge(),
			Cost:           item.Cost(),
			Date:           item.Date(),
			Position:       i,
		})
		for _, a := range item.Adjustments() {
			rec.adjustments = append(rec.adjustments, adjustmentFromDomain(id, a, len(rec.adjustments)))
		}
	}
	for _, a := range b.Adjustments() {
		rec.adjustments = append(rec.adjustments, adjustmentFromDomain(id, a, len(rec.adjustments)))
	}
	for i, r := range b.Revisions() {
		rec.revisions = append(rec.revisions, RevisionDTO{
			BundleID:  id,
			At:        r.At(),
			ActorID:   r.Actor().ID().Bytes(),
			ActorName: r.Actor().Name(),
			Reason:    r.Reason(),
			Fields:    pq.StringArray(r.Fields()),
			Position:  i,
		})
	}
	return rec
}

func adjustmentFromDomain(bundleID uuid.UUID, a settlement.Adjustment, position int) AdjustmentDTO {
	dto := AdjustmentDTO{
		ID:          a.ID().Bytes(),
		BundleID:    bundleID,
		Amount:      a.Amount(),
		Category:    string(a.Category()),
		Description: a.Description(),
		Position:    position,
		Audit:       columns.FromAudit(a.Audit()),
	}
	if itemID := a.ItemID(); itemID != nil {
		id := itemID.Bytes()
		dto.ItemID = &id
	}
	return dto
}

func toDomain(rec record) (*settlement.Bundle, error) {
	id, err := kernel.UUIDFromGoogle(rec.bundle.ID)
	if err != nil {
		return nil, err
	}
	direction, err := settlement.ParseDirection(rec.bundle.Direction)
	if err != nil {
		return nil, err
	}
	status, err := settlement.ParseStatus(rec.bundle.Status)
	if err != nil {
		return nil, err
	}
	form, err := formToDomain(rec.bundle)
	if err != nil {
		return nil, err
	}
	audit, err := rec.bundle.Audit.Audit()
	if err != nil {
		return nil, err
	}

	// Item-scoped adjustments are grouped under their member.
	byItem := make(map[uuid.UUID][]settlement.Adjustment)
	var bundleAdjustments []settlement.Adjustment
	for _, dto := range rec.adjustments {
		a, err := adjustmentToDomain(dto)
		if err != nil {
			return nil, err
		}
		if dto.ItemID != nil {
			byItem[*dto.ItemID] = append(byItem[*dto.ItemID], a)
			continue
		}
		bundleAdjustments = append(bundleAdjustments, a)
	}

	items := make([]settlement.Item, 0, len(rec.items))
	for _, dto := range rec.items {
		item, err := itemToDomain(dto, byItem[dto.ShipmentID])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	revisions := make([]settlement.Revision, 0, len(rec.revisions))
	for _, dto := range rec.revisions {
		actorID, err := kernel.UUIDFromGoogle(dto.ActorID)
		if err != nil {
			return nil, err
		}
		actor, err := kernel.NewActor(actorID, dto.ActorName)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, settlement.RestoreRevision(dto.At, actor, dto.Reason, []string(dto.Fields)))
	}

	return settlement.RestoreBundle(
		id,
		direction,
		status,
		items,
		bundleAdjustments,
		form,
		rec.bundle.TaxRate,
		revisions,
		audit,
	)
}

func formToDomain(dto BundleDTO) (settlement.Form, error) {
	counterparty, err := dto.Counterparty.Snapshot(kernel.PartyCompany)
	if err != nil {
		return settlement.Form{}, err
	}
	if counterparty == nil {
		counterparty = &kernel.Snapshot{}
	}
	manager, err := dto.Manager.Snapshot(kernel.PartyUser)
	if err != nil {
		return settlement.Form{}, err
	}
	period, err := kernel.NewPeriod(dto.PeriodStart, dto.PeriodEnd)
	if err != nil {
		return settlement.Form{}, err
	}

	return settlement.Form{
		Counterparty:  *counterparty,
		Manager:       manager,
		Period:        &period,
		TaxExempt:     dto.TaxExempt,
		PaymentMethod: dto.PaymentMethod,
		Bank: settlement.BankAccount{
			BankName:      dto.BankName,
			AccountNumber: dto.BankAccountNumber,
			AccountHolder: dto.BankAccountHolder,
		},
		DueDate: dto.DueDate,
		Memo:    dto.Memo,
	}, nil
}

func itemToDomain(dto ItemDTO, adjustments []settlement.Adjustment) (settlement.Item, error) {
	shipmentID, err := kernel.UUIDFromGoogle(dto.ShipmentID)
	if err != nil {
		return settlement.Item{}, err
	}
	dispatchID, err := kernel.UUIDFromGoogle(dto.DispatchID)
	if err != nil {
		return settlement.Item{}, err
	}
	counterpartyID, err := kernel.UUIDFromGoogle(dto.CounterpartyID)
	if err != nil {
		return settlement.Item{}, err
	}
	return settlement.RestoreItem(shipmentID, dispatchID, counterpartyID, dto.Charge, dto.Cost, dto.Date, adjustments), nil
}

func adjustmentToDomain(dto AdjustmentDTO) (settlement.Adjustment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return settlement.Adjustment{}, err
	}
	var itemID *kernel.UUID
	if dto.ItemID != nil {
		parsed, err := kernel.UUIDFromGoogle(*dto.ItemID)
		if err != nil {
			return settlement.Adjustment{}, err
		}
		itemID = &parsed
	}
	audit, err := dto.Audit.Audit()
	if err != nil {
		return settlement.Adjustment{}, err
	}
	return settlement.RestoreAdjustment(
		id,
		itemID,
		dto.Amount,
		settlement.Category(dto.Category),
		dto.Description,
		audit,
	), nil
}
