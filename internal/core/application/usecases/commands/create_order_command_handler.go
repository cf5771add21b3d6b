package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Freezes line prices, applies an optional coupon, derives the totals through
// the pricing engine, and persists the new order in ORDER_PLACED status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewPricingEngine(), pricingConfig)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), lines, "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory    UoWFactory
	engine        services.PricingEngine
	pricingConfig services.PricingConfig
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory since coupon lookup and order persistence share one transaction.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory, engine services.PricingEngine, pricingConfig services.PricingConfig,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		engine:        engine,
		pricingConfig: pricingConfig,
	}
}

// Handle processes the order creation command.
// A missing, inactive, or expired coupon fails the whole checkout rather than
// silently pricing without the discount.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lines := make([]order.LineItem, 0, len(cmd.Lines()))
	for _, spec := range cmd.Lines() {
		line, err := order.RestoreLineItem(spec.Kind, spec.ItemID, spec.Quantity, spec.UnitPrice)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	discount := decimal.Zero
	couponCode := ""
	if cmd.CouponCode() != "" {
		aggregate, err := uow.CouponRepository().GetByCode(ctx, cmd.CouponCode())
		if err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, line := range lines {
			subtotal = subtotal.Add(line.Total())
		}

		discount, err = aggregate.Apply(subtotal, now)
		if err != nil {
			return err
		}
		couponCode = aggregate.Code()
	}

	totals, err := h.engine.Quote(lines, discount, couponCode, h.pricingConfig)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), lines, totals, now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
