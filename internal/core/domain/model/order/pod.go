package order

import (
	"time"

	"orderflow/internal/pkg/errs"
)

// ErrSignatureRequired is returned when proof of delivery is captured without a
// signature reference. The signature is the minimum acceptable evidence.
var ErrSignatureRequired = errs.NewValueIsRequiredError("signatureRef")

// ProofOfDelivery captures the evidence of a successful handover: recipient
// name, a signature blob reference, and an optional photo reference. An order
// can only reach Delivered once a ProofOfDelivery exists.
type ProofOfDelivery struct {
	recipientName string
	signatureRef  string
	photoRef      string
	capturedAt    time.Time
}

// NewProofOfDelivery validates and creates a POD record. Recipient name and
// signature reference are mandatory; the photo is optional.
func NewProofOfDelivery(recipientName, signatureRef, photoRef string, capturedAt time.Time) (ProofOfDelivery, error) {
	if recipientName == "" {
		return ProofOfDelivery{}, errs.NewValueIsRequiredError("recipientName")
	}
	if signatureRef == "" {
		return ProofOfDelivery{}, ErrSignatureRequired
	}

	return ProofOfDelivery{
		recipientName: recipientName,
		signatureRef:  signatureRef,
		photoRef:      photoRef,
		capturedAt:    capturedAt,
	}, nil
}

// RecipientName returns who received the order.
func (p ProofOfDelivery) RecipientName() string {
	return p.recipientName
}

// SignatureRef returns the signature blob reference.
func (p ProofOfDelivery) SignatureRef() string {
	return p.signatureRef
}

// PhotoRef returns the optional photo reference.
func (p ProofOfDelivery) PhotoRef() string {
	return p.photoRef
}

// CapturedAt returns when the proof was captured.
func (p ProofOfDelivery) CapturedAt() time.Time {
	return p.capturedAt
}
