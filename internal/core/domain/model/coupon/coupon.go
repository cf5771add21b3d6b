package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrCouponIsNotConstructed is returned when a Coupon instance was not
	// created through NewCoupon or RestoreCoupon.
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon or RestoreCoupon")

	// ErrCouponInactive signals an apply attempt on a deactivated coupon.
	ErrCouponInactive = errors.New("coupon is not active")

	// ErrCouponExpired signals an apply attempt past the coupon's expiry.
	ErrCouponExpired = errors.New("coupon has expired")

	// ErrMinimumOrderNotMet signals a subtotal below the coupon's minimum.
	ErrMinimumOrderNotMet = errors.New("order subtotal is below the coupon minimum")
)

const (
	discountPercentMin = 1
	discountPercentMax = 100
)

// NormalizeCode is the single case-normalizing boundary for coupon codes:
// trimmed and upper-cased. Lookups and storage both use the normalized form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Coupon is a percentage discount created and edited by the admin back office.
// Pricing treats coupons as read-only: a coupon that is inactive or expired is
// rejected at apply time regardless of prior successful applications.
type Coupon struct {
	code            string
	discountPercent int
	minOrderAmount  decimal.Decimal
	expiresAt       time.Time
	active          bool

	isConstructed bool
}

// NewCoupon creates a coupon with a normalized code. The discount percent must
// be within [1, 100] and the minimum order amount non-negative. New coupons
// start active.
func NewCoupon(code string, discountPercent int, minOrderAmount decimal.Decimal, expiresAt time.Time) (*Coupon, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if discountPercent < discountPercentMin || discountPercent > discountPercentMax {
		return nil, errs.NewValueIsOutOfRangeError(
			"discountPercent", discountPercent, discountPercentMin, discountPercentMax)
	}
	if minOrderAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"minOrderAmount", fmt.Errorf("%s is negative", minOrderAmount))
	}

	return &Coupon{
		code:            normalized,
		discountPercent: discountPercent,
		minOrderAmount:  minOrderAmount,
		expiresAt:       expiresAt,
		active:          true,
		isConstructed:   true,
	}, nil
}

// RestoreCoupon rebuilds a coupon from persistence.
func RestoreCoupon(
	code string, discountPercent int, minOrderAmount decimal.Decimal, expiresAt time.Time, active bool,
) (*Coupon, error) {
	c, err := NewCoupon(code, discountPercent, minOrderAmount, expiresAt)
	if err != nil {
		return nil, err
	}
	c.active = active
	return c, nil
}

// Validate ensures the Coupon was created through a constructor.
func (c *Coupon) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCouponIsNotConstructed
	}
	return nil
}

// Code returns the canonical (upper-case) coupon code.
func (c *Coupon) Code() string {
	return c.code
}

// DiscountPercent returns the discount percentage in [1, 100].
func (c *Coupon) DiscountPercent() int {
	return c.discountPercent
}

// MinOrderAmount returns the minimum subtotal the coupon applies to.
func (c *Coupon) MinOrderAmount() decimal.Decimal {
	return c.minOrderAmount
}

// ExpiresAt returns the expiry timestamp.
func (c *Coupon) ExpiresAt() time.Time {
	return c.expiresAt
}

// IsActive reports whether the coupon is currently enabled.
func (c *Coupon) IsActive() bool {
	return c.active
}

// IsExpired reports whether the coupon is past its expiry at the given time.
func (c *Coupon) IsExpired(now time.Time) bool {
	return !now.Before(c.expiresAt)
}

// Deactivate disables the coupon. Used by the admin and by the expiry sweep.
func (c *Coupon) Deactivate() {
	c.active = false
}

// Apply evaluates the coupon against an order subtotal and returns the discount
// amount (subtotal x percent / 100). The evaluation is idempotent: the same
// code and subtotal always yield the same discount. Fails with ErrCouponInactive,
// ErrCouponExpired, or ErrMinimumOrderNotMet.
func (c *Coupon) Apply(subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if !c.active {
		return decimal.Zero, errs.NewStateConflictErrorWithCause("coupon", ErrCouponInactive)
	}
	if c.IsExpired(now) {
		return decimal.Zero, errs.NewStateConflictErrorWithCause("coupon", ErrCouponExpired)
	}
	if subtotal.LessThan(c.minOrderAmount) {
		return decimal.Zero, errs.NewStateConflictErrorWithCause("coupon",
			fmt.Errorf("%w: subtotal %s is below minimum %s", ErrMinimumOrderNotMet, subtotal, c.minOrderAmount))
	}

	discount := subtotal.
		Mul(decimal.NewFromInt(int64(c.discountPercent))).
		Div(decimal.NewFromInt(100))
	return discount, nil
}
