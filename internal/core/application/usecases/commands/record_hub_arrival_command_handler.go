package commands

import (
	"context"
	"time"
)

// RecordHubArrivalCommandHandler records hub custody as a hub-scoped message
// on the order. The status itself is driven separately through SetStatus.
type RecordHubArrivalCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordHubArrivalCommandHandler creates a handler for hub custody events.
func NewRecordHubArrivalCommandHandler(uowFactory OrderUoWFactory) RecordHubArrivalCommandHandler {
	return RecordHubArrivalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the hub arrival command.
func (h *RecordHubArrivalCommandHandler) Handle(ctx context.Context, cmd RecordHubArrivalCommand) error {
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

	if err = aggregate.RecordHubArrival(cmd.HubName(), cmd.StaffName(), cmd.Note(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
