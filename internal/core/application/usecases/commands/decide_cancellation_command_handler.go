package commands

import (
	"context"
	"time"
)

// DecideCancellationCommandHandler resolves a pending cancellation request.
// Approval cancels the order terminally; rejection restores the status the
// order held when the request was made.
type DecideCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDecideCancellationCommandHandler creates a handler for cancellation decisions.
func NewDecideCancellationCommandHandler(uowFactory OrderUoWFactory) DecideCancellationCommandHandler {
	return DecideCancellationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation decision command.
func (h *DecideCancellationCommandHandler) Handle(ctx context.Context, cmd DecideCancellationCommand) error {
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

	now := time.Now().UTC()
	if cmd.Approve() {
		err = aggregate.ApproveCancellation(now)
	} else {
		err = aggregate.RejectCancellation(now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
