package settlement

import "github.com/shopspring/decimal"

// TaxScale is the number of decimal places tax is rounded to.
const TaxScale int32 = 0

// Totals are the computed amounts of a bundle.
type Totals struct {
	Base              decimal.Decimal
	BundleAdjustments decimal.Decimal
	ItemAdjustments   decimal.Decimal
	Tax               decimal.Decimal
	Grand             decimal.Decimal
}

// Taxable is the amount tax is levied on.
func (t Totals) Taxable() decimal.Decimal {
	return t.Base.Add(t.BundleAdjustments).Add(t.ItemAdjustments)
}

// ComputeTotals derives every total from its inputs.
func ComputeTotals(base, bundleAdjustments, itemAdjustments, taxRate decimal.Decimal, taxExempt bool) Totals {
	t := Totals{
		Base:              base,
		BundleAdjustments: bundleAdjustments,
		ItemAdjustments:   itemAdjustments,
		Tax:               decimal.Zero,
	}
	if !taxExempt {
		t.Tax = t.Taxable().Mul(taxRate).Round(TaxScale)
	}
	t.Grand = t.Taxable().Add(t.Tax)
	return t
}

// IsConsistent checks grand == base + bundle adjustments + item adjustments + tax.
func (t Totals) IsConsistent() bool {
	return t.Grand.Equal(t.Base.Add(t.BundleAdjustments).Add(t.ItemAdjustments).Add(t.Tax))
}
