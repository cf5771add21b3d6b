package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Cancellation negotiation failures, attached as StateConflictError causes.
var (
	// ErrCancellationAlreadyRequested signals a second cancellation request on
	// the same order; a customer gets one shot per order.
	ErrCancellationAlreadyRequested = errors.New("cancellation has already been requested for this order")

	// ErrNoActiveCancellationRequest signals an approve/reject decision when no
	// request is pending.
	ErrNoActiveCancellationRequest = errors.New("order has no active cancellation request")
)

// CancellationState tracks the customer/admin cancellation negotiation.
// It moves NONE -> REQUESTED -> APPROVED|REJECTED and never back.
type CancellationState int

const (
	// CancellationNone means no cancellation has been requested.
	CancellationNone CancellationState = iota

	// CancellationRequested means the customer asked and the admin is yet to decide.
	CancellationRequested

	// CancellationApproved means the admin approved; the order is CANCELLED.
	CancellationApproved

	// CancellationRejected means the admin rejected; the order returned to its
	// prior status and no further requests are accepted.
	CancellationRejected
)

func getCancellationStateStrings() map[CancellationState]string {
	return map[CancellationState]string{
		CancellationNone:      "NONE",
		CancellationRequested: "REQUESTED",
		CancellationApproved:  "APPROVED",
		CancellationRejected:  "REJECTED",
	}
}

// CancellationStateFromString parses a persisted cancellation state.
func CancellationStateFromString(s string) (CancellationState, error) {
	for state, str := range getCancellationStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return CancellationNone, errs.NewValueIsInvalidErrorWithCause(
		"cancellationState", fmt.Errorf("%q is not a valid cancellation state", s))
}

// Validate checks that the value belongs to the closed enum.
func (c CancellationState) Validate() error {
	if _, ok := getCancellationStateStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"cancellationState", fmt.Errorf("%d is not a valid cancellation state", c))
	}
	return nil
}

// String returns the canonical name of the state.
func (c CancellationState) String() string {
	if str, ok := getCancellationStateStrings()[c]; ok {
		return str
	}
	return "NONE"
}
