package commands

import (
	"context"
	"time"
)

// RequestCancellationCommandHandler records the customer's cancellation request
// on the order, moving it to CANCEL_REQUESTED.
type RequestCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRequestCancellationCommandHandler creates a handler for cancellation requests.
func NewRequestCancellationCommandHandler(uowFactory OrderUoWFactory) RequestCancellationCommandHandler {
	return RequestCancellationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation request command.
func (h *RequestCancellationCommandHandler) Handle(ctx context.Context, cmd RequestCancellationCommand) error {
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

	if err = aggregate.RequestCancellation(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
