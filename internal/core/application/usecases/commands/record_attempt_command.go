package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrRecordAttemptCommandIsNotConstructed = errors.New(
	"RecordAttemptCommand must be created via NewRecordAttemptCommand constructor",
)

// RecordAttemptCommand represents a delivery partner logging a failed delivery
// attempt with a coded reason. Note and photo reference are optional.
type RecordAttemptCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	reason   order.AttemptReason
	note     string
	photoRef string

	guard guard.ConstructorGuard
}

// NewRecordAttemptCommand creates a command to log a failed delivery attempt.
func NewRecordAttemptCommand(
	orderID kernel.UUID, reason order.AttemptReason, note, photoRef string,
) (RecordAttemptCommand, error) {
	attemptCommand := RecordAttemptCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		attemptCommand.setOrderID(orderID),
		attemptCommand.setReason(reason),
	); err != nil {
		return RecordAttemptCommand{}, err
	}

	attemptCommand.note = note
	attemptCommand.photoRef = photoRef
	return attemptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordAttemptCommand) Validate() error {
	return c.guard.Validate(ErrRecordAttemptCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered.
func (c RecordAttemptCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the failure reason code.
func (c RecordAttemptCommand) Reason() order.AttemptReason {
	return c.reason
}

// Note returns the optional free-text note.
func (c RecordAttemptCommand) Note() string {
	return c.note
}

// PhotoRef returns the optional evidence photo reference.
func (c RecordAttemptCommand) PhotoRef() string {
	return c.photoRef
}

func (c *RecordAttemptCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordAttemptCommand) setReason(reason order.AttemptReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}

	c.reason = reason
	return nil
}
