package commands

import (
	"context"
	"time"
)

// AssignCourierCommandHandler attaches courier details to an order and
// narrates the assignment in the order's message log.
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignCourierCommandHandler creates a handler for courier assignment operations.
func NewAssignCourierCommandHandler(uowFactory OrderUoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier assignment command.
func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
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

	if err = aggregate.AssignCourier(
		cmd.CourierName(), cmd.TrackingID(), cmd.TrackingURLPattern(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
