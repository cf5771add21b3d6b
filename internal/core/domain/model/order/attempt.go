package order

import (
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
)

// AttemptReason is the closed set of codes for a failed delivery attempt.
type AttemptReason string

const (
	AttemptReasonCustomerNotAvailable AttemptReason = "CUSTOMER_NOT_AVAILABLE"
	AttemptReasonAddressNotFound      AttemptReason = "ADDRESS_NOT_FOUND"
	AttemptReasonPaymentFailed        AttemptReason = "PAYMENT_FAILED"
	AttemptReasonContactInvalid       AttemptReason = "CONTACT_INVALID"
	AttemptReasonOther                AttemptReason = "OTHER"
)

// AttemptReasonFromString parses a reason code, rejecting anything outside the enum.
func AttemptReasonFromString(s string) (AttemptReason, error) {
	reason := AttemptReason(s)
	if err := reason.Validate(); err != nil {
		return "", err
	}
	return reason, nil
}

// Validate checks that the reason belongs to the closed enum.
func (r AttemptReason) Validate() error {
	switch r {
	case AttemptReasonCustomerNotAvailable, AttemptReasonAddressNotFound,
		AttemptReasonPaymentFailed, AttemptReasonContactInvalid, AttemptReasonOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"reason", fmt.Errorf("%q is not a valid attempt reason", string(r)))
	}
}

// AttemptRecord documents one failed delivery attempt. Recording an attempt
// never changes the order status; the order stays OUT_FOR_DELIVERY until a
// further attempt or a successful delivery.
type AttemptRecord struct {
	reason    AttemptReason
	note      string
	photoRef  string
	timestamp time.Time
}

// NewAttemptRecord creates an attempt record; note and photoRef are optional.
func NewAttemptRecord(reason AttemptReason, note, photoRef string, timestamp time.Time) (AttemptRecord, error) {
	if err := reason.Validate(); err != nil {
		return AttemptRecord{}, err
	}

	return AttemptRecord{
		reason:    reason,
		note:      note,
		photoRef:  photoRef,
		timestamp: timestamp,
	}, nil
}

// Reason returns the failure reason code.
func (a AttemptRecord) Reason() AttemptReason {
	return a.reason
}

// Note returns the optional free-text note.
func (a AttemptRecord) Note() string {
	return a.note
}

// PhotoRef returns the optional evidence photo reference.
func (a AttemptRecord) PhotoRef() string {
	return a.photoRef
}

// Timestamp returns when the attempt was recorded.
func (a AttemptRecord) Timestamp() time.Time {
	return a.timestamp
}
