// Package settlement provides the settlement Bundle aggregate: a periodic financial
// statement grouping settle-eligible shipments for one counterparty, plus signed
// adjustments at bundle or item level.
//
// One implementation serves both directions. Direction selects the counterparty
// (the shipper for receivables, the carrier for payables) and the amount taken from
// each item (charge or cost).
//
// Status moves strictly forward:
//
//	Draft -> Matching -> Completed
//
// Completed bundles are read-only; correcting one means deleting and recreating it.
//
// Totals are recomputed from members and adjustments after every mutation:
//
//	grand = base + bundle adjustments + item adjustments + tax
//	tax   = round(taxable * rate, 0), zero when the bundle is tax-exempt
package settlement
