package commands_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/coupon"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeactivateExpiredCouponsCommandHandler_Handle_SweepsAll(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeactivateExpiredCouponsCommand()
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	first, err := coupon.NewCoupon("OLD10", 10, decimal.Zero, past)
	require.NoError(t, err)
	second, err := coupon.NewCoupon("OLD20", 20, decimal.Zero, past)
	require.NoError(t, err)

	repo := new(MockCouponRepository)
	uow := new(MockCouponUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CouponRepository").Return(repo).Once(),
		repo.On("GetAllExpiredActive", mock.Anything).Return([]*coupon.Coupon{first, second}, nil).Once(),
		repo.On("Update", mock.Anything, first).Return(nil).Once(),
		repo.On("Update", mock.Anything, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCouponUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeactivateExpiredCouponsCommandHandler(factory)
	swept, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, swept)
	assert.False(t, first.IsActive())
	assert.False(t, second.IsActive())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeactivateExpiredCouponsCommandHandler_Handle_NothingToSweep(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeactivateExpiredCouponsCommand()
	require.NoError(t, err)

	repo := new(MockCouponRepository)
	uow := new(MockCouponUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CouponRepository").Return(repo).Once(),
		repo.On("GetAllExpiredActive", mock.Anything).Return([]*coupon.Coupon{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCouponUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeactivateExpiredCouponsCommandHandler(factory)
	swept, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, swept)
}
