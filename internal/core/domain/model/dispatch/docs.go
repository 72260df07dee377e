// Package dispatch provides the Dispatch aggregate: the binding of one shipment to a
// carrying company, a driver and a vehicle at an agreed price.
//
// A dispatch references its shipment by id and never owns it. Counterparty, manager
// and driver are stored as snapshots taken when they were assigned; reassigning a
// party takes a fresh snapshot and clearing it drops the snapshot with every field
// derived from it.
//
// Dispatch statuses are strictly forward:
//
//	Assigned -> Loading -> Loaded -> InTransit -> Unloaded -> Completed -> Settled
//
// Forward moves may skip steps up to Completed. Settled is reachable only from Completed.
//
// Each status except Settled maps to a shipment flow status. The coordinator in the
// domain services package applies both changes together.
package dispatch
