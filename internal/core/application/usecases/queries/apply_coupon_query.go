package queries

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrApplyCouponQueryIsNotConstructed = errors.New(
	"ApplyCouponQuery must be created via NewApplyCouponQuery constructor",
)

// ApplyCouponQuery previews a coupon against a cart subtotal before checkout.
// The same eligibility rules run again inside order creation, so a preview
// never grants anything.
type ApplyCouponQuery struct {
	code     string
	subtotal decimal.Decimal

	guard guard.ConstructorGuard
}

// NewApplyCouponQuery creates a query to preview a coupon's discount.
func NewApplyCouponQuery(code string, subtotal decimal.Decimal) (ApplyCouponQuery, error) {
	if code == "" {
		return ApplyCouponQuery{}, errs.NewValueIsRequiredError("code")
	}
	if subtotal.IsNegative() {
		return ApplyCouponQuery{}, errs.NewValueIsInvalidError("subtotal")
	}

	return ApplyCouponQuery{
		code:     code,
		subtotal: subtotal,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ApplyCouponQuery) Validate() error {
	return q.guard.Validate(ErrApplyCouponQueryIsNotConstructed)
}

// Code returns the coupon code as entered.
func (q ApplyCouponQuery) Code() string {
	return q.code
}

// Subtotal returns the cart subtotal to evaluate against.
func (q ApplyCouponQuery) Subtotal() decimal.Decimal {
	return q.subtotal
}

// ApplyCouponQueryResponse is the discount preview for an eligible coupon.
type ApplyCouponQueryResponse struct {
	Code            string
	DiscountPercent int
	Discount        decimal.Decimal
}
