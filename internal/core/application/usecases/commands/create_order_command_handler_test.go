package commands_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/coupon"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPricingConfig() services.PricingConfig {
	return services.PricingConfig{
		TaxRatePercent: decimal.RequireFromString("5"),
		ShippingFee:    decimal.RequireFromString("10.00"),
	}
}

func testLineSpecs() []commands.OrderLineSpec {
	return []commands.OrderLineSpec{
		{Kind: order.LineKindFood, ItemID: "food-1", Quantity: 6, UnitPrice: decimal.RequireFromString("100.00")},
	}
}

func newCreateOrderHandler(factory commands.UoWFactory) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(factory, services.NewPricingEngine(), testPricingConfig())
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testLineSpecs(), "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCreateOrderHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	created := repo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, cmd.OrderID(), created.ID())
	assert.Equal(t, order.OrderPlaced, created.Status())
	assert.True(t, created.Totals().GrandTotal().Equal(decimal.RequireFromString("640.00")))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_WithCoupon(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testLineSpecs(), "summer10")
	require.NoError(t, err)

	testCoupon, err := coupon.NewCoupon("SUMMER10", 10,
		decimal.RequireFromString("500.00"), time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	couponRepo := new(MockCouponRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CouponRepository").Return(couponRepo).Once(),
		couponRepo.On("GetByCode", mock.Anything, "summer10").Return(testCoupon, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCreateOrderHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	// 600 subtotal, 30 tax, 10 shipping, 60 discount.
	created := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.True(t, created.Totals().Discount().Equal(decimal.RequireFromString("60.00")))
	assert.True(t, created.Totals().GrandTotal().Equal(decimal.RequireFromString("580.00")))
	assert.Equal(t, "SUMMER10", created.Totals().CouponCode())

	orderRepo.AssertExpectations(t)
	couponRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownCoupon_FailsCheckout(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testLineSpecs(), "NOPE")
	require.NoError(t, err)

	couponRepo := new(MockCouponRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CouponRepository").Return(couponRepo).Once(),
		couponRepo.On("GetByCode", mock.Anything, "NOPE").
			Return(nil, errs.NewObjectNotFoundError("coupon", "NOPE")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCreateOrderHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	couponRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_IneligibleCoupon_FailsCheckout(t *testing.T) {
	ctx := t.Context()

	// Subtotal 600 is below the 1000 minimum.
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testLineSpecs(), "BIG15")
	require.NoError(t, err)

	testCoupon, err := coupon.NewCoupon("BIG15", 15,
		decimal.RequireFromString("1000.00"), time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)

	couponRepo := new(MockCouponRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CouponRepository").Return(couponRepo).Once(),
		couponRepo.On("GetByCode", mock.Anything, "BIG15").Return(testCoupon, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCreateOrderHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, coupon.ErrMinimumOrderNotMet)

	couponRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := newCreateOrderHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
