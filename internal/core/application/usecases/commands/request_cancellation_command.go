package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrRequestCancellationCommandIsNotConstructed = errors.New(
	"RequestCancellationCommand must be created via NewRequestCancellationCommand constructor",
)

// RequestCancellationCommand represents a customer asking to cancel an order.
// The request opens a negotiation; an admin decision resolves it.
type RequestCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestCancellationCommand creates a command to open a cancellation request.
func NewRequestCancellationCommand(orderID kernel.UUID) (RequestCancellationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestCancellationCommand{}, err
	}

	return RequestCancellationCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancellationCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c RequestCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}
