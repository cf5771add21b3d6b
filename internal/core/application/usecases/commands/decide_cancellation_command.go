package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDecideCancellationCommandIsNotConstructed = errors.New(
	"DecideCancellationCommand must be created via NewDecideCancellationCommand constructor",
)

// DecideCancellationCommand represents the admin decision on a pending
// cancellation request: approve (terminal cancel) or reject (restore the
// pre-request status).
type DecideCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	approve bool

	guard guard.ConstructorGuard
}

// NewDecideCancellationCommand creates a command to resolve a cancellation request.
func NewDecideCancellationCommand(orderID kernel.UUID, approve bool) (DecideCancellationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DecideCancellationCommand{}, err
	}

	return DecideCancellationCommand{
		orderID: orderID,
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DecideCancellationCommand) Validate() error {
	return c.guard.Validate(ErrDecideCancellationCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under negotiation.
func (c DecideCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Approve reports whether the request is approved or rejected.
func (c DecideCancellationCommand) Approve() bool {
	return c.approve
}
