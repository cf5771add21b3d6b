package commands

import (
	"context"
)

// PushLocationCommandHandler ingests courier position reports. Reports for
// orders that are not out for delivery are dropped without error, since the
// sending client may not have observed the transition yet.
type PushLocationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPushLocationCommandHandler creates a handler for location ingestion.
func NewPushLocationCommandHandler(uowFactory OrderUoWFactory) PushLocationCommandHandler {
	return PushLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one position report. The returned flag reports whether the
// point was accepted onto the order's track.
func (h *PushLocationCommandHandler) Handle(ctx context.Context, cmd PushLocationCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	accepted, err := aggregate.PushLocation(cmd.Latitude(), cmd.Longitude(), cmd.Timestamp())
	if err != nil {
		return false, err
	}
	if !accepted {
		return false, uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	return true, uow.Commit(ctx)
}
