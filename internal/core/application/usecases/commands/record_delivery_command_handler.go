package commands

import (
	"context"
	"time"
)

// RecordDeliveryCommandHandler captures proof of delivery and moves the order
// to the terminal DELIVERED status in the same transaction.
type RecordDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordDeliveryCommandHandler creates a handler for proof-of-delivery capture.
func NewRecordDeliveryCommandHandler(uowFactory OrderUoWFactory) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery completion command.
func (h *RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) error {
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

	if err = aggregate.RecordProofOfDelivery(
		cmd.RecipientName(), cmd.SignatureRef(), cmd.PhotoRef(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
