// Package shipment provides the Shipment aggregate: a transport request from a pickup
// place to a delivery place, owned by the company that registered it.
//
// The package includes:
//   - Shipment: the aggregate root holding owner and place snapshots, the requested
//     vehicle, the charge billed to the owner and the flow status
//   - FlowStatus: the ordered physical-fulfillment lifecycle
//
// Key business rules:
//   - Flow status only moves forward along
//     Requested -> AwaitingDispatch -> Dispatched -> AwaitingLoad -> Loaded ->
//     InTransit -> Unloaded -> Completed
//   - Releasing a dispatch is the one move back, to AwaitingDispatch, and is refused
//     once the shipment is completed
//   - Cancellation is a flag orthogonal to the flow status. It can be set from any
//     state except Completed, and a canceled shipment never receives a new dispatch
package shipment
