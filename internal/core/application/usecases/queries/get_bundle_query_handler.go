package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/errs"
)

// BundleReader loads a bundle with its members, adjustments and revisions.
type BundleReader interface {
	Get(ctx context.Context, id kernel.UUID) (*settlement.Bundle, error)
}

type GetBundleQueryHandler struct {
	bundles BundleReader
}

func NewGetBundleQueryHandler(bundles BundleReader) GetBundleQueryHandler {
	return GetBundleQueryHandler{bundles: bundles}
}

func (h GetBundleQueryHandler) Handle(ctx context.Context, query GetBundleQuery) (GetBundleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBundleQueryResponse{}, err
	}

	b, err := h.bundles.Get(ctx, query.BundleID())
	if err != nil {
		return GetBundleQueryResponse{}, err
	}
	if b.Direction() != query.Direction() {
		return GetBundleQueryResponse{}, errs.NewObjectNotFoundError("bundle", query.BundleID().String())
	}

	form := b.Form()
	audit := b.Audit()
	resp := GetBundleQueryResponse{
		ID:            b.ID(),
		Direction:     b.Direction(),
		Status:        b.Status(),
		Counterparty:  form.Counterparty,
		Manager:       form.Manager,
		PeriodStart:   b.Period().Start(),
		PeriodEnd:     b.Period().End(),
		TaxExempt:     form.TaxExempt,
		TaxRate:       b.TaxRate(),
		PaymentMethod: form.PaymentMethod,
		Bank:          form.Bank,
		DueDate:       form.DueDate,
		Memo:          form.Memo,
		Adjustments:   adjustmentViews(b.Adjustments()),
		Totals:        b.Totals(),
		CreatedBy:     audit.CreatedBy().Name(),
		CreatedAt:     audit.CreatedAt(),
		UpdatedBy:     audit.UpdatedBy().Name(),
		UpdatedAt:     audit.UpdatedAt(),
	}

	for _, item := range b.Items() {
		resp.Items = append(resp.Items, BundleItemView{
			ID:              item.ID(),
			DispatchID:      item.DispatchID(),
			CounterpartyID:  item.CounterpartyID(),
			Charge:          item.Charge(),
			Cost:            item.Cost(),
			Amount:          item.Amount(b.Direction()),
			Date:            item.Date(),
			Adjustments:     adjustmentViews(item.Adjustments()),
			AdjustmentTotal: item.AdjustmentTotal(),
		})
	}
	for _, r := range b.Revisions() {
		resp.Revisions = append(resp.Revisions, RevisionView{
			At:     r.At(),
			Actor:  r.Actor().Name(),
			Reason: r.Reason(),
			Fields: r.Fields(),
		})
	}
	return resp, nil
}

func adjustmentViews(adjustments []settlement.Adjustment) []AdjustmentView {
	views := make([]AdjustmentView, 0, len(adjustments))
	for _, a := range adjustments {
		audit := a.Audit()
		views = append(views, AdjustmentView{
			ID:          a.ID(),
			ItemID:      a.ItemID(),
			Amount:      a.Amount(),
			Category:    a.Category(),
			Description: a.Description(),
			CreatedBy:   audit.CreatedBy().Name(),
			CreatedAt:   audit.CreatedAt(),
			UpdatedBy:   audit.UpdatedBy().Name(),
			UpdatedAt:   audit.UpdatedAt(),
		})
	}
	return views
}
