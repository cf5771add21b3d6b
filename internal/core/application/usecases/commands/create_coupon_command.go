package commands

import (
	"errors"
	"time"

	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateCouponCommandIsNotConstructed = errors.New(
	"CreateCouponCommand must be created via NewCreateCouponCommand constructor",
)

// CreateCouponCommand represents an admin creating a percentage coupon.
// Field-level rules (code, percent range, minimum amount) are enforced by the
// coupon aggregate.
type CreateCouponCommand struct { //nolint:recvcheck //using for validation
	code            string
	discountPercent int
	minOrderAmount  decimal.Decimal
	expiresAt       time.Time

	guard guard.ConstructorGuard
}

// NewCreateCouponCommand creates a command to register a new coupon.
func NewCreateCouponCommand(
	code string, discountPercent int, minOrderAmount decimal.Decimal, expiresAt time.Time,
) (CreateCouponCommand, error) {
	return CreateCouponCommand{
		code:            code,
		discountPercent: discountPercent,
		minOrderAmount:  minOrderAmount,
		expiresAt:       expiresAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCouponCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouponCommandIsNotConstructed)
}

// Code returns the requested coupon code as entered.
func (c CreateCouponCommand) Code() string {
	return c.code
}

// DiscountPercent returns the requested discount percentage.
func (c CreateCouponCommand) DiscountPercent() int {
	return c.discountPercent
}

// MinOrderAmount returns the minimum subtotal the coupon should apply to.
func (c CreateCouponCommand) MinOrderAmount() decimal.Decimal {
	return c.minOrderAmount
}

// ExpiresAt returns the requested expiry timestamp.
func (c CreateCouponCommand) ExpiresAt() time.Time {
	return c.expiresAt
}
