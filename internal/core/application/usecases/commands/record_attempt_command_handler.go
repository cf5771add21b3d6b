package commands

import (
	"context"
	"time"
)

// RecordAttemptCommandHandler logs a failed delivery attempt on an order that
// is out for delivery. The order's status is unchanged.
type RecordAttemptCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordAttemptCommandHandler creates a handler for failed attempt logging.
func NewRecordAttemptCommandHandler(uowFactory OrderUoWFactory) RecordAttemptCommandHandler {
	return RecordAttemptCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the failed attempt command.
func (h *RecordAttemptCommandHandler) Handle(ctx context.Context, cmd RecordAttemptCommand) error {
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

	if err = aggregate.RecordAttempt(cmd.Reason(), cmd.Note(), cmd.PhotoRef(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
