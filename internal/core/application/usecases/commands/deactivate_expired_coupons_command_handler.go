package commands

import (
	"context"
)

// DeactivateExpiredCouponsCommandHandler sweeps active coupons whose expiry
// has passed and persists them as inactive, all in one transaction.
type DeactivateExpiredCouponsCommandHandler struct {
	uowFactory CouponUoWFactory
}

// NewDeactivateExpiredCouponsCommandHandler creates a handler for the expiry sweep.
func NewDeactivateExpiredCouponsCommandHandler(uowFactory CouponUoWFactory) DeactivateExpiredCouponsCommandHandler {
	return DeactivateExpiredCouponsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the expiry sweep command and reports how many coupons were
// deactivated.
func (h *DeactivateExpiredCouponsCommandHandler) Handle(
	ctx context.Context, cmd DeactivateExpiredCouponsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couponRepo := uow.CouponRepository()
	expired, err := couponRepo.GetAllExpiredActive(ctx)
	if err != nil {
		return 0, err
	}

	for _, aggregate := range expired {
		aggregate.Deactivate()
		if err = couponRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(expired), nil
}
