package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrRecordHubArrivalCommandIsNotConstructed = errors.New(
	"RecordHubArrivalCommand must be created via NewRecordHubArrivalCommand constructor",
)

// RecordHubArrivalCommand represents hub staff acknowledging physical custody
// of a shipped order. The note is optional.
type RecordHubArrivalCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	hubName   string
	staffName string
	note      string

	guard guard.ConstructorGuard
}

// NewRecordHubArrivalCommand creates a command to record a hub custody event.
func NewRecordHubArrivalCommand(orderID kernel.UUID, hubName, staffName, note string) (RecordHubArrivalCommand, error) {
	arrivalCommand := RecordHubArrivalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		arrivalCommand.setOrderID(orderID),
		arrivalCommand.setCustody(hubName, staffName),
	); err != nil {
		return RecordHubArrivalCommand{}, err
	}

	arrivalCommand.note = note
	return arrivalCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordHubArrivalCommand) Validate() error {
	return c.guard.Validate(ErrRecordHubArrivalCommandIsNotConstructed)
}

// OrderID returns the identifier of the received order.
func (c RecordHubArrivalCommand) OrderID() kernel.UUID {
	return c.orderID
}

// HubName returns the receiving hub's name.
func (c RecordHubArrivalCommand) HubName() string {
	return c.hubName
}

// StaffName returns the receiving staff member's name.
func (c RecordHubArrivalCommand) StaffName() string {
	return c.staffName
}

// Note returns the optional free-text custody note.
func (c RecordHubArrivalCommand) Note() string {
	return c.note
}

func (c *RecordHubArrivalCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordHubArrivalCommand) setCustody(hubName, staffName string) error {
	if hubName == "" {
		return errs.NewValueIsRequiredError("hubName")
	}
	if staffName == "" {
		return errs.NewValueIsRequiredError("staffName")
	}

	c.hubName = hubName
	c.staffName = staffName
	return nil
}
