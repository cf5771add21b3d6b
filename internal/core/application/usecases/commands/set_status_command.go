package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrSetStatusCommandIsNotConstructed = errors.New(
	"SetStatusCommand must be created via NewSetStatusCommand constructor",
)

// SetStatusCommand represents a request to move an order to a new lifecycle
// status. The state machine in the order aggregate decides legality.
type SetStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewSetStatusCommand creates a command to transition an order's status.
func NewSetStatusCommand(orderID kernel.UUID, status order.Status) (SetStatusCommand, error) {
	statusCommand := SetStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setStatus(status),
	); err != nil {
		return SetStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SetStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c SetStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested target status.
func (c SetStatusCommand) Status() order.Status {
	return c.status
}

func (c *SetStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
