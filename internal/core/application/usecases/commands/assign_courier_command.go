package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents an admin attaching courier and tracking
// details to an order. Assignment is informational and never moves the status.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	courierName        string
	trackingID         string
	trackingURLPattern string

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to an order.
// The tracking URL pattern is optional.
func NewAssignCourierCommand(
	orderID kernel.UUID, courierName, trackingID, trackingURLPattern string,
) (AssignCourierCommand, error) {
	assignCommand := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderID(orderID),
		assignCommand.setCourier(courierName, trackingID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	assignCommand.trackingURLPattern = trackingURLPattern
	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierName returns the courier's display name.
func (c AssignCourierCommand) CourierName() string {
	return c.courierName
}

// TrackingID returns the carrier tracking identifier.
func (c AssignCourierCommand) TrackingID() string {
	return c.trackingID
}

// TrackingURLPattern returns the optional tracking URL template.
func (c AssignCourierCommand) TrackingURLPattern() string {
	return c.trackingURLPattern
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setCourier(courierName, trackingID string) error {
	if courierName == "" {
		return errs.NewValueIsRequiredError("courierName")
	}
	if trackingID == "" {
		return errs.NewValueIsRequiredError("trackingId")
	}

	c.courierName = courierName
	c.trackingID = trackingID
	return nil
}
