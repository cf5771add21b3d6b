package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// RecordDeliveryCommand represents a delivery partner capturing proof of
// delivery: recipient name and signature are mandatory, the photo is optional.
// A successful delivery is the only path to the DELIVERED status.
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	recipientName string
	signatureRef  string
	photoRef      string

	guard guard.ConstructorGuard
}

// NewRecordDeliveryCommand creates a command to capture proof of delivery.
func NewRecordDeliveryCommand(
	orderID kernel.UUID, recipientName, signatureRef, photoRef string,
) (RecordDeliveryCommand, error) {
	deliveryCommand := RecordDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveryCommand.setOrderID(orderID),
		deliveryCommand.setProof(recipientName, signatureRef),
	); err != nil {
		return RecordDeliveryCommand{}, err
	}

	deliveryCommand.photoRef = photoRef
	return deliveryCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the delivered order.
func (c RecordDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RecipientName returns the name of the person who received the order.
func (c RecordDeliveryCommand) RecipientName() string {
	return c.recipientName
}

// SignatureRef returns the captured signature reference.
func (c RecordDeliveryCommand) SignatureRef() string {
	return c.signatureRef
}

// PhotoRef returns the optional photo evidence reference.
func (c RecordDeliveryCommand) PhotoRef() string {
	return c.photoRef
}

func (c *RecordDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordDeliveryCommand) setProof(recipientName, signatureRef string) error {
	if recipientName == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	if signatureRef == "" {
		return order.ErrSignatureRequired
	}

	c.recipientName = recipientName
	c.signatureRef = signatureRef
	return nil
}
