package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAddMessageCommandIsNotConstructed = errors.New(
	"AddMessageCommand must be created via NewAddMessageCommand constructor",
)

// AddMessageCommand represents an operational actor appending a free-text
// entry to an order's delivery message log.
type AddMessageCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	text    string
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewAddMessageCommand creates a command to append a delivery message.
func NewAddMessageCommand(orderID kernel.UUID, text string, actor order.Actor) (AddMessageCommand, error) {
	messageCommand := AddMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		messageCommand.setOrderID(orderID),
		messageCommand.setText(text),
		messageCommand.setActor(actor),
	); err != nil {
		return AddMessageCommand{}, err
	}

	return messageCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddMessageCommand) Validate() error {
	return c.guard.Validate(ErrAddMessageCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to annotate.
func (c AddMessageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Text returns the message body.
func (c AddMessageCommand) Text() string {
	return c.text
}

// Actor returns the author tag of the message.
func (c AddMessageCommand) Actor() order.Actor {
	return c.actor
}

func (c *AddMessageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddMessageCommand) setText(text string) error {
	if text == "" {
		return errs.NewValueIsRequiredError("text")
	}

	c.text = text
	return nil
}

func (c *AddMessageCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
