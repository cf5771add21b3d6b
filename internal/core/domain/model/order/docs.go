// Package order provides the Order aggregate root and its satellite value
// objects: the Status state machine, frozen LineItems and Totals, the
// cancellation negotiation, CourierAssignment, ProofOfDelivery, the append-only
// DeliveryMessage log, the AttemptRecord log, and the LocationPoint series.
//
// Key business rules:
//   - line item prices and order totals are frozen at creation time
//   - status transitions are strictly forward plus a cancellation side branch;
//     the cancellation-reject rollback is the one sanctioned rewind
//   - every visited status has exactly one write-once timestamp
//   - Delivered is only reachable once a proof of delivery exists
//   - the messaging log is append-only; location pushes outside
//     OUT_FOR_DELIVERY are silently dropped
//
// The package follows Domain-Driven Design principles: private fields,
// validating constructors, and behavior-rich methods enforcing invariants.
package order
