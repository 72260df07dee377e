package settlement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const AggregateType = "settlement_bundle"

const (
	EventCreated   = "bundle.created"
	EventUpdated   = "bundle.updated"
	EventMatching  = "bundle.matching"
	EventCompleted = "bundle.completed"
	EventDeleted   = "bundle.deleted"
	EventAdjusted  = "bundle.adjusted"
)

var ErrBundleIsNotConstructed = errors.New("Bundle must be created via NewBundle constructor")

type BankAccount struct {
	BankName      string
	AccountNumber string
	AccountHolder string
}

func (b BankAccount) IsZero() bool {
	return b == BankAccount{}
}

// Form carries the caller-supplied descriptive fields of a new bundle.
// A nil Period is derived from the member item dates.
type Form struct {
	Counterparty  kernel.Snapshot
	Manager       *kernel.Snapshot
	Period        *kernel.Period
	TaxExempt     bool
	PaymentMethod string
	Bank          BankAccount
	DueDate       *time.Time
	Memo          string
}

// Revision is the audit record of one bundle update.
type Revision struct {
	at     time.Time
	actor  kernel.Actor
	reason string
	fields []string
}

func RestoreRevision(at time.Time, actor kernel.Actor, reason string, fields []string) Revision {
	return Revision{at: at, actor: actor, reason: reason, fields: fields}
}

func (r Revision) At() time.Time {
	return r.at
}

func (r Revision) Actor() kernel.Actor {
	return r.actor
}

func (r Revision) Reason() string {
	return r.reason
}

func (r Revision) Fields() []string {
	return r.fields
}

// Bundle is the aggregate root of a settlement statement.
//
// Invariants:
//   - members are unique, non-empty and share one counterparty, which matches the
//     counterparty snapshot
//   - every adjustment belongs to the bundle or to exactly one member
//   - totals equal the values recomputed from members and adjustments
type Bundle struct {
	id            kernel.UUID
	direction     Direction
	status        Status
	items         []*Item
	adjustments   []*Adjustment
	counterparty  kernel.Snapshot
	manager       *kernel.Snapshot
	period        kernel.Period
	taxExempt     bool
	taxRate       decimal.Decimal
	paymentMethod string
	bank          BankAccount
	dueDate       *time.Time
	memo          string
	revisions     []Revision
	totals        Totals
	audit         kernel.Audit

	kernel.Events
	isConstructed bool
}

// NewBundle creates a draft bundle from eligible items. The caller guarantees the
// items are currently unbundled; storage enforces it again on insert.
func NewBundle(
	id kernel.UUID,
	direction Direction,
	eligible []EligibleItem,
	form Form,
	taxRate decimal.Decimal,
	actor kernel.Actor,
	now time.Time,
) (*Bundle, error) {
	if err := errors.Join(id.Validate(), direction.Validate(), actor.Validate(), ValidateTaxRate(taxRate)); err != nil {
		return nil, err
	}

	b := &Bundle{
		id:            id,
		direction:     direction,
		status:        Draft,
		taxExempt:     form.TaxExempt,
		taxRate:       taxRate,
		paymentMethod: strings.TrimSpace(form.PaymentMethod),
		bank:          form.Bank,
		dueDate:       form.DueDate,
		memo:          strings.TrimSpace(form.Memo),
		audit:         kernel.NewAudit(actor, now),
		isConstructed: true,
	}

	items, err := b.candidateMembers(eligible)
	if err != nil {
		return nil, err
	}
	b.items = items

	if err = b.checkCounterparty(form.Counterparty, items); err != nil {
		return nil, err
	}
	b.counterparty = form.Counterparty

	if form.Manager != nil {
		if err = form.Manager.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("manager", err)
		}
		manager := *form.Manager
		b.manager = &manager
	}

	if form.Period != nil {
		b.period = *form.Period
	} else if b.period, err = b.derivedPeriod(); err != nil {
		return nil, err
	}

	b.recalculate()
	b.record(EventCreated, now, map[string]any{
		"direction":      direction.String(),
		"counterpartyId": b.counterparty.ID(),
		"items":          len(b.items),
		"grandTotal":     b.totals.Grand.String(),
	})
	return b, nil
}

// RestoreBundle rebuilds a persisted bundle. Totals are recomputed from members and adjustments.
func RestoreBundle(
	id kernel.UUID,
	direction Direction,
	status Status,
	items []Item,
	adjustments []Adjustment,
	form Form,
	taxRate decimal.Decimal,
	revisions []Revision,
	audit kernel.Audit,
) (*Bundle, error) {
	if err := errors.Join(id.Validate(), direction.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	b := &Bundle{
		id:            id,
		direction:     direction,
		status:        status,
		counterparty:  form.Counterparty,
		manager:       form.Manager,
		taxExempt:     form.TaxExempt,
		taxRate:       taxRate,
		paymentMethod: form.PaymentMethod,
		bank:          form.Bank,
		dueDate:       form.DueDate,
		memo:          form.Memo,
		revisions:     revisions,
		audit:         audit,
		isConstructed: true,
	}
	for i := range items {
		item := items[i]
		b.items = append(b.items, &item)
	}
	for i := range adjustments {
		a := adjustments[i]
		b.adjustments = append(b.adjustments, &a)
	}
	if form.Period != nil {
		b.period = *form.Period
	}

	b.recalculate()
	return b, nil
}

func (b *Bundle) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBundleIsNotConstructed
	}
	return nil
}

func (b *Bundle) ID() kernel.UUID {
	return b.id
}

func (b *Bundle) Direction() Direction {
	return b.direction
}

func (b *Bundle) Status() Status {
	return b.status
}

func (b *Bundle) Items() []Item {
	out := make([]Item, 0, len(b.items))
	for _, item := range b.items {
		out = append(out, *item)
	}
	return out
}

func (b *Bundle) ItemIDs() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(b.items))
	for _, item := range b.items {
		out = append(out, item.shipmentID)
	}
	return out
}

func (b *Bundle) Item(id kernel.UUID) (Item, bool) {
	if idx, ok := b.findItem(id); ok {
		return *b.items[idx], true
	}
	return Item{}, false
}

// Adjustments returns the bundle-wide adjustments.
func (b *Bundle) Adjustments() []Adjustment {
	out := make([]Adjustment, 0, len(b.adjustments))
	for _, a := range b.adjustments {
		out = append(out, *a)
	}
	return out
}

func (b *Bundle) Counterparty() kernel.Snapshot {
	return b.counterparty
}

func (b *Bundle) Manager() *kernel.Snapshot {
	return b.manager
}

func (b *Bundle) Period() kernel.Period {
	return b.period
}

func (b *Bundle) TaxExempt() bool {
	return b.taxExempt
}

func (b *Bundle) TaxRate() decimal.Decimal {
	return b.taxRate
}

func (b *Bundle) PaymentMethod() string {
	return b.paymentMethod
}

func (b *Bundle) Bank() BankAccount {
	return b.bank
}

func (b *Bundle) DueDate() *time.Time {
	return b.dueDate
}

func (b *Bundle) Memo() string {
	return b.memo
}

func (b *Bundle) Revisions() []Revision {
	return b.revisions
}

func (b *Bundle) Totals() Totals {
	return b.totals
}

func (b *Bundle) Audit() kernel.Audit {
	return b.audit
}

// Form returns the descriptive fields in the shape NewBundle accepts.
func (b *Bundle) Form() Form {
	period := b.period
	return Form{
		Counterparty:  b.counterparty,
		Manager:       b.manager,
		Period:        &period,
		TaxExempt:     b.taxExempt,
		PaymentMethod: b.paymentMethod,
		Bank:          b.bank,
		DueDate:       b.dueDate,
		Memo:          b.memo,
	}
}

func (b *Bundle) RequestMatching(actor kernel.Actor, now time.Time) error {
	next, err := b.status.RequestMatching()
	if err != nil {
		return err
	}
	b.status = next
	b.audit = b.audit.Touch(actor, now)
	b.record(EventMatching, now, nil)
	return nil
}

// Complete marks the bundle paid. There is no way back.
func (b *Bundle) Complete(actor kernel.Actor, now time.Time) error {
	next, err := b.status.Complete()
	if err != nil {
		return err
	}
	b.status = next
	b.audit = b.audit.Touch(actor, now)
	b.record(EventCompleted, now, map[string]any{"grandTotal": b.totals.Grand.String()})
	return nil
}

// MarkDeleted records the deletion event. Members return to the eligible pool once the row is gone.
func (b *Bundle) MarkDeleted(actor kernel.Actor, now time.Time) {
	b.audit = b.audit.Touch(actor, now)
	b.record(EventDeleted, now, map[string]any{"items": b.ItemIDs()})
}

func (b *Bundle) AddAdjustment(id kernel.UUID, in AdjustmentInput, actor kernel.Actor, now time.Time) (Adjustment, error) {
	if err := b.EnsureEditable(); err != nil {
		return Adjustment{}, err
	}
	a, err := newAdjustment(id, ScopeBundle, nil, in, actor, now)
	if err != nil {
		return Adjustment{}, err
	}
	b.adjustments = append(b.adjustments, a)
	b.adjusted(actor, now, "added", a)
	return *a, nil
}

func (b *Bundle) EditAdjustment(id kernel.UUID, in AdjustmentInput, actor kernel.Actor, now time.Time) (Adjustment, error) {
	if err := b.EnsureEditable(); err != nil {
		return Adjustment{}, err
	}
	idx, ok := findAdjustment(b.adjustments, id)
	if !ok {
		return Adjustment{}, errs.NewObjectNotFoundError("adjustment", id.String())
	}
	a := b.adjustments[idx]
	if err := a.edit(in, actor, now); err != nil {
		return Adjustment{}, err
	}
	b.adjusted(actor, now, "edited", a)
	return *a, nil
}

// RemoveAdjustment fails with NotFound when id is not a bundle-wide adjustment of this bundle.
func (b *Bundle) RemoveAdjustment(id kernel.UUID, actor kernel.Actor, now time.Time) error {
	if err := b.EnsureEditable(); err != nil {
		return err
	}
	idx, ok := findAdjustment(b.adjustments, id)
	if !ok {
		return errs.NewObjectNotFoundError("adjustment", id.String())
	}
	removed := b.adjustments[idx]
	b.adjustments = append(b.adjustments[:idx], b.adjustments[idx+1:]...)
	b.adjusted(actor, now, "removed", removed)
	return nil
}

func (b *Bundle) AddItemAdjustment(
	itemID kernel.UUID,
	id kernel.UUID,
	in AdjustmentInput,
	actor kernel.Actor,
	now time.Time,
) (Adjustment, error) {
	item, err := b.editableItem(itemID)
	if err != nil {
		return Adjustment{}, err
	}
	owner := item.shipmentID
	a, err := newAdjustment(id, ScopeItem, &owner, in, actor, now)
	if err != nil {
		return Adjustment{}, err
	}
	item.adjustments = append(item.adjustments, a)
	b.adjusted(actor, now, "added", a)
	return *a, nil
}

func (b *Bundle) EditItemAdjustment(
	itemID kernel.UUID,
	id kernel.UUID,
	in AdjustmentInput,
	actor kernel.Actor,
	now time.Time,
) (Adjustment, error) {
	item, err := b.editableItem(itemID)
	if err != nil {
		return Adjustment{}, err
	}
	idx, ok := item.findAdjustment(id)
	if !ok {
		return Adjustment{}, errs.NewObjectNotFoundError("adjustment", id.String())
	}
	a := item.adjustments[idx]
	if err = a.edit(in, actor, now); err != nil {
		return Adjustment{}, err
	}
	b.adjusted(actor, now, "edited", a)
	return *a, nil
}

// RemoveItemAdjustment fails with NotFound when id does not belong to the given member.
func (b *Bundle) RemoveItemAdjustment(itemID kernel.UUID, id kernel.UUID, actor kernel.Actor, now time.Time) error {
	item, err := b.editableItem(itemID)
	if err != nil {
		return err
	}
	idx, ok := item.findAdjustment(id)
	if !ok {
		return errs.NewObjectNotFoundError("adjustment", id.String())
	}
	removed := item.adjustments[idx]
	item.adjustments = append(item.adjustments[:idx], item.adjustments[idx+1:]...)
	b.adjusted(actor, now, "removed", removed)
	return nil
}

func (b *Bundle) editableItem(itemID kernel.UUID) (*Item, error) {
	if err := b.EnsureEditable(); err != nil {
		return nil, err
	}
	idx, ok := b.findItem(itemID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("item", itemID.String())
	}
	return b.items[idx], nil
}

// EnsureEditable returns InvalidState once the bundle is completed.
func (b *Bundle) EnsureEditable() error {
	if !b.status.IsEditable() {
		return errs.NewInvalidStateError("bundle", fmt.Sprintf("%s bundles cannot be changed", b.status))
	}
	return nil
}

func (b *Bundle) adjusted(actor kernel.Actor, now time.Time, action string, a *Adjustment) {
	b.recalculate()
	b.audit = b.audit.Touch(actor, now)
	payload := map[string]any{
		"action":       action,
		"adjustmentId": a.id,
		"amount":       a.amount.String(),
		"grandTotal":   b.totals.Grand.String(),
	}
	if a.itemID != nil {
		payload["itemId"] = *a.itemID
	}
	b.record(EventAdjusted, now, payload)
}

// candidateMembers builds the member list for eligible, keeping existing members
// (and their adjustments) that stay in the bundle.
func (b *Bundle) candidateMembers(eligible []EligibleItem) ([]*Item, error) {
	if len(eligible) == 0 {
		return nil, errs.NewEmptySelectionError("itemIds")
	}

	existing := make(map[kernel.UUID]*Item, len(b.items))
	for _, item := range b.items {
		existing[item.shipmentID] = item
	}

	seen := make(map[kernel.UUID]struct{}, len(eligible))
	counterpartyID := eligible[0].CounterpartyID(b.direction)
	items := make([]*Item, 0, len(eligible))
	for _, e := range eligible {
		if _, dup := seen[e.ShipmentID]; dup {
			return nil, errs.NewValidationError(errs.FieldError{
				Kind:    errs.KindValidation,
				Field:   "itemIds",
				Message: fmt.Sprintf("item %s is selected more than once", e.ShipmentID),
			})
		}
		seen[e.ShipmentID] = struct{}{}

		if !e.CounterpartyID(b.direction).IsEqual(counterpartyID) {
			return nil, errs.NewValidationError(errs.FieldError{
				Kind:    errs.KindValidation,
				Field:   "itemIds",
				Message: "items belong to different counterparties",
			})
		}

		if item, ok := existing[e.ShipmentID]; ok {
			items = append(items, item)
			continue
		}
		items = append(items, newItem(e, b.direction))
	}
	return items, nil
}

func (b *Bundle) checkCounterparty(counterparty kernel.Snapshot, items []*Item) error {
	if err := counterparty.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("counterparty", err)
	}
	if len(items) > 0 && !counterparty.ID().IsEqual(items[0].counterpartyID) {
		return errs.NewValidationError(errs.FieldError{
			Kind:    errs.KindValidation,
			Field:   "counterparty",
			Message: fmt.Sprintf("counterparty %s does not own the selected items", counterparty.ID()),
		})
	}
	return nil
}

func (b *Bundle) derivedPeriod() (kernel.Period, error) {
	dates := make([]time.Time, 0, len(b.items))
	for _, item := range b.items {
		dates = append(dates, item.date)
	}
	return kernel.PeriodCovering(dates...)
}

func (b *Bundle) recalculate() {
	base := decimal.Zero
	itemAdjustments := decimal.Zero
	for _, item := range b.items {
		base = base.Add(item.Amount(b.direction))
		itemAdjustments = itemAdjustments.Add(item.AdjustmentTotal())
	}
	b.totals = ComputeTotals(base, sumAdjustments(b.adjustments), itemAdjustments, b.taxRate, b.taxExempt)
}

func (b *Bundle) findItem(id kernel.UUID) (int, bool) {
	for idx, item := range b.items {
		if item.shipmentID.IsEqual(id) {
			return idx, true
		}
	}
	return -1, false
}

func (b *Bundle) record(eventType string, at time.Time, payload map[string]any) {
	b.Record(kernel.NewDomainEvent(AggregateType, b.id, eventType, at, payload))
}

func findAdjustment(adjustments []*Adjustment, id kernel.UUID) (int, bool) {
	for idx, a := range adjustments {
		if a.id.IsEqual(id) {
			return idx, true
		}
	}
	return -1, false
}

// ValidateTaxRate accepts rates in [0, 1).
func ValidateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errs.NewValueIsOutOfRangeError("tax rate", rate.String(), 0, "below 1")
	}
	return nil
}
