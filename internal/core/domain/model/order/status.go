package order

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Business reasons for rejected status operations. They are attached as the
// cause of a StateConflictError so callers can match them with errors.Is.
var (
	// ErrAlreadyInStatus signals a repeated transition to an already-visited
	// status. Statuses are write-once, so the request is rejected as a no-op.
	ErrAlreadyInStatus = errors.New("order has already reached the requested status")

	// ErrTransitionNotAllowed signals a transition that is not strictly forward
	// in the lifecycle and is not a cancellation branch.
	ErrTransitionNotAllowed = errors.New("status transition is not allowed")

	// ErrOrderIsTerminal signals an operation on an order that is already
	// delivered or cancelled.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")

	// ErrMissingProofOfDelivery signals an attempt to reach Delivered without a
	// recorded proof of delivery.
	ErrMissingProofOfDelivery = errors.New("proof of delivery must be recorded before the order is delivered")
)

// Status represents the lifecycle state of an order. The forward chain is
//
//	OrderPlaced -> OrderConfirmed -> OrderPacked -> Shipped ->
//	OrderAtHub -> OutForDelivery -> Delivered
//
// with a cancellation side branch: CancelRequested is reachable from any
// non-terminal status, Cancelled is terminal. Skipping forward steps is legal;
// moving backwards is not, except for the cancellation-reject rollback handled
// by the Order aggregate.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// OrderPlaced is the initial status set at checkout.
	OrderPlaced

	// OrderConfirmed means the back office accepted the order.
	OrderConfirmed

	// OrderPacked means the order left the packing station.
	OrderPacked

	// Shipped means the order is in transit to the hub.
	Shipped

	// OrderAtHub means hub staff hold custody of the order.
	OrderAtHub

	// OutForDelivery means a delivery partner holds custody of the order.
	OutForDelivery

	// Delivered is the successful terminal status. Only reachable through
	// proof-of-delivery capture.
	Delivered

	// CancelRequested means the customer asked to cancel and the admin has not
	// decided yet. Not part of the forward chain.
	CancelRequested

	// Cancelled is the terminal status of an approved (or forced) cancellation.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		OrderPlaced:     "ORDER_PLACED",
		OrderConfirmed:  "ORDER_CONFIRMED",
		OrderPacked:     "ORDER_PACKED",
		Shipped:         "SHIPPED",
		OrderAtHub:      "ORDER_AT_HUB",
		OutForDelivery:  "OUT_FOR_DELIVERY",
		Delivered:       "DELIVERED",
		CancelRequested: "CANCEL_REQUESTED",
		Cancelled:       "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		OrderPlaced:     "ORDER_PLACED",
		OrderConfirmed:  "ORDER_CONFIRMED",
		OrderPacked:     "ORDER_PACKED",
		Shipped:         "SHIPPED",
		OrderAtHub:      "ORDER_AT_HUB",
		OutForDelivery:  "OUT_FOR_DELIVERY",
		Delivered:       "DELIVERED",
		CancelRequested: "CANCEL_REQUESTED",
		Cancelled:       "CANCELLED",
	}
}

// StatusFromString is the single case-normalizing boundary for status values
// arriving from clients or persistence. Input is trimmed and upper-cased;
// anything outside the closed enum is rejected rather than coerced.
func StatusFromString(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value belongs to the closed enum.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical upper-snake name of the status.
// Implements fmt.Stringer; safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// isForward reports whether the status belongs to the forward chain
// (OrderPlaced..Delivered), as opposed to the cancellation branch.
func (s Status) isForward() bool {
	return s >= OrderPlaced && s <= Delivered
}

// CanTransitionTo checks whether a transition from s to target is legal:
//
//   - target strictly later than s in the forward chain, or
//   - target is CancelRequested or Cancelled and s is not terminal.
//
// The cancellation-reject rollback is intentionally not expressible here; it is
// the one sanctioned rewind and is performed by the Order aggregate directly.
func (s Status) CanTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == s {
		return errs.NewStateConflictErrorWithCause("status", ErrAlreadyInStatus)
	}

	if target == CancelRequested || target == Cancelled {
		if s.IsTerminal() {
			return errs.NewStateConflictErrorWithCause("status",
				fmt.Errorf("%w: cannot cancel from %s", ErrOrderIsTerminal, s))
		}
		return nil
	}

	if !s.isForward() || !target.isForward() || target < s {
		return errs.NewStateConflictErrorWithCause("status",
			fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, s, target))
	}

	return nil
}
