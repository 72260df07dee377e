package settlement

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/patch"
)

// Field names reported in UpdateResult.
const (
	FieldItems         = "items"
	FieldCounterparty  = "counterparty"
	FieldManager       = "manager"
	FieldPeriod        = "period"
	FieldTaxExempt     = "taxExempt"
	FieldPaymentMethod = "paymentMethod"
	FieldBank          = "bank"
	FieldDueDate       = "dueDate"
	FieldMemo          = "memo"
)

// Changes is a partial bundle update. Absent fields are left untouched and cleared
// fields are emptied; a cleared period is derived again from the members.
type Changes struct {
	Items         patch.Field[[]EligibleItem]
	Counterparty  patch.Field[kernel.Snapshot]
	Manager       patch.Field[kernel.Snapshot]
	Period        patch.Field[kernel.Period]
	TaxExempt     patch.Field[bool]
	PaymentMethod patch.Field[string]
	Bank          patch.Field[BankAccount]
	DueDate       patch.Field[time.Time]
	Memo          patch.Field[string]
}

// UpdateResult lists which fields changed, which were refused and the totals after the update.
type UpdateResult struct {
	Applied  []string
	Rejected []errs.FieldError
	Totals   Totals
}

// ApplyChanges applies every valid field and reports the rest. Removing a member
// drops its item-level adjustments. The reason is kept on the revision only.
func (b *Bundle) ApplyChanges(ch Changes, reason string, actor kernel.Actor, now time.Time) (UpdateResult, error) {
	if err := b.EnsureEditable(); err != nil {
		return UpdateResult{}, err
	}

	var result UpdateResult
	reject := func(field string, err error) {
		result.Rejected = append(result.Rejected, fieldErrors(field, err)...)
	}

	var candidate []*Item
	var candidateErr error
	if ch.Items.Supplied() {
		eligible, _ := ch.Items.Value()
		candidate, candidateErr = b.candidateMembers(eligible)
	}

	if ch.Counterparty.Supplied() {
		if snap, ok := ch.Counterparty.Value(); !ok {
			reject(FieldCounterparty, errs.NewValueIsRequiredError("counterparty"))
		} else {
			members := b.items
			if candidate != nil {
				members = candidate
			}
			if err := b.checkCounterparty(snap, members); err != nil {
				reject(FieldCounterparty, err)
			} else {
				b.counterparty = snap
				result.Applied = append(result.Applied, FieldCounterparty)
			}
		}
	}

	if ch.Items.Supplied() {
		switch {
		case candidateErr != nil:
			reject(FieldItems, candidateErr)
		default:
			if err := b.checkCounterparty(b.counterparty, candidate); err != nil {
				reject(FieldItems, err)
			} else {
				b.items = candidate
				result.Applied = append(result.Applied, FieldItems)
			}
		}
	}

	if ch.Manager.Supplied() {
		if snap, ok := ch.Manager.Value(); !ok {
			b.manager = nil
			result.Applied = append(result.Applied, FieldManager)
		} else if err := snap.Validate(); err != nil {
			reject(FieldManager, errs.NewValueIsRequiredErrorWithCause("manager", err))
		} else {
			b.manager = &snap
			result.Applied = append(result.Applied, FieldManager)
		}
	}

	if ch.Period.Supplied() {
		if period, ok := ch.Period.Value(); ok {
			b.period = period
			result.Applied = append(result.Applied, FieldPeriod)
		} else if derived, err := b.derivedPeriod(); err != nil {
			reject(FieldPeriod, err)
		} else {
			b.period = derived
			result.Applied = append(result.Applied, FieldPeriod)
		}
	}

	if ch.TaxExempt.Supplied() {
		exempt, _ := ch.TaxExempt.Value()
		b.taxExempt = exempt
		result.Applied = append(result.Applied, FieldTaxExempt)
	}

	if ch.PaymentMethod.Supplied() {
		method, _ := ch.PaymentMethod.Value()
		b.paymentMethod = strings.TrimSpace(method)
		result.Applied = append(result.Applied, FieldPaymentMethod)
	}

	if ch.Bank.Supplied() {
		bank, _ := ch.Bank.Value()
		b.bank = bank
		result.Applied = append(result.Applied, FieldBank)
	}

	if ch.DueDate.Supplied() {
		if due, ok := ch.DueDate.Value(); ok {
			b.dueDate = &due
		} else {
			b.dueDate = nil
		}
		result.Applied = append(result.Applied, FieldDueDate)
	}

	if ch.Memo.Supplied() {
		memo, _ := ch.Memo.Value()
		b.memo = strings.TrimSpace(memo)
		result.Applied = append(result.Applied, FieldMemo)
	}

	b.recalculate()
	result.Totals = b.totals

	if len(result.Applied) > 0 {
		b.revisions = append(b.revisions, Revision{
			at:     now,
			actor:  actor,
			reason: strings.TrimSpace(reason),
			fields: result.Applied,
		})
		b.audit = b.audit.Touch(actor, now)
		b.record(EventUpdated, now, map[string]any{
			"fields":     result.Applied,
			"reason":     strings.TrimSpace(reason),
			"grandTotal": b.totals.Grand.String(),
		})
	}
	return result, nil
}

func fieldErrors(field string, err error) []errs.FieldError {
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		out := make([]errs.FieldError, 0, len(verr.Fields))
		for _, fe := range verr.Fields {
			fe.Field = field
			out = append(out, fe)
		}
		return out
	}
	return []errs.FieldError{errs.NewFieldError(field, err)}
}
