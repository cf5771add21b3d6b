package commands

import (
	"context"
	"time"
)

// SetStatusCommandHandler loads an order, applies the requested transition,
// and persists the result under the optimistic version guard.
type SetStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetStatusCommandHandler creates a handler for status transition operations.
func NewSetStatusCommandHandler(uowFactory OrderUoWFactory) SetStatusCommandHandler {
	return SetStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status transition command.
func (h *SetStatusCommandHandler) Handle(ctx context.Context, cmd SetStatusCommand) error {
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

	if err = aggregate.ChangeStatus(cmd.Status(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
