package commands

import (
	"context"
	"time"
)

// AddMessageCommandHandler appends an entry to an order's message log.
type AddMessageCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddMessageCommandHandler creates a handler for message append operations.
func NewAddMessageCommandHandler(uowFactory OrderUoWFactory) AddMessageCommandHandler {
	return AddMessageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the message append command.
func (h *AddMessageCommandHandler) Handle(ctx context.Context, cmd AddMessageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AddMessage(cmd.Text(), cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
