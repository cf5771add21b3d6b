package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrTotalsNotReproducible is returned when the grand total does not equal
// max(subtotal + tax + shipping - discount, 0). Stored components must always
// round-trip to the stored grand total.
var ErrTotalsNotReproducible = errors.New("grand total is not reproducible from its components")

// Totals holds the monetary breakdown frozen onto an order at checkout:
// subtotal, tax, shipping, discount and the resulting grand total, plus the
// applied coupon code if any. Once payment is confirmed the grand total is
// immutable; Totals has no mutators at all.
type Totals struct {
	subtotal   decimal.Decimal
	tax        decimal.Decimal
	shipping   decimal.Decimal
	discount   decimal.Decimal
	grandTotal decimal.Decimal
	couponCode string
}

// NewTotals validates and creates a totals breakdown. All components must be
// non-negative and the grand total must equal
// max(subtotal + tax + shipping - discount, 0).
func NewTotals(subtotal, tax, shipping, discount, grandTotal decimal.Decimal, couponCode string) (Totals, error) {
	for name, v := range map[string]decimal.Decimal{
		"subtotal":   subtotal,
		"tax":        tax,
		"shipping":   shipping,
		"discount":   discount,
		"grandTotal": grandTotal,
	} {
		if v.IsNegative() {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(
				name, fmt.Errorf("%s is negative", v))
		}
	}

	expected := subtotal.Add(tax).Add(shipping).Sub(discount)
	if expected.IsNegative() {
		expected = decimal.Zero
	}
	if !grandTotal.Equal(expected) {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause("grandTotal",
			fmt.Errorf("%w: got %s, expected %s", ErrTotalsNotReproducible, grandTotal, expected))
	}

	return Totals{
		subtotal:   subtotal,
		tax:        tax,
		shipping:   shipping,
		discount:   discount,
		grandTotal: grandTotal,
		couponCode: couponCode,
	}, nil
}

// Subtotal returns the sum of all line totals.
func (t Totals) Subtotal() decimal.Decimal {
	return t.subtotal
}

// Tax returns the tax amount applied to the subtotal.
func (t Totals) Tax() decimal.Decimal {
	return t.tax
}

// Shipping returns the shipping fee.
func (t Totals) Shipping() decimal.Decimal {
	return t.shipping
}

// Discount returns the coupon discount amount.
func (t Totals) Discount() decimal.Decimal {
	return t.discount
}

// GrandTotal returns the amount charged to the customer.
func (t Totals) GrandTotal() decimal.Decimal {
	return t.grandTotal
}

// CouponCode returns the canonical code of the applied coupon, or "".
func (t Totals) CouponCode() string {
	return t.couponCode
}
