// Package services provides domain services that coordinate business rules
// spanning more than one aggregate.
//
// The package includes:
//   - DispatchCoordinator: keeps a shipment's flow status in step with its dispatch
//     when the dispatch is created, moves through its statuses or is released
//
// Services never touch storage. Handlers load the aggregates, call the service and
// persist both aggregates inside one unit of work.
package services
