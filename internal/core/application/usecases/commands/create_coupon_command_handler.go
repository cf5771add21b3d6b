package commands

import (
	"context"

	"orderflow/internal/core/domain/model/coupon"
)

// CreateCouponCommandHandler creates coupons for the admin back office.
type CreateCouponCommandHandler struct {
	uowFactory CouponUoWFactory
}

// NewCreateCouponCommandHandler creates a handler for coupon creation operations.
func NewCreateCouponCommandHandler(uowFactory CouponUoWFactory) CreateCouponCommandHandler {
	return CreateCouponCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the coupon creation command.
func (h *CreateCouponCommandHandler) Handle(ctx context.Context, cmd CreateCouponCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := coupon.NewCoupon(cmd.Code(), cmd.DiscountPercent(), cmd.MinOrderAmount(), cmd.ExpiresAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CouponRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
