package services

import (
	"fmt"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept on stored money values.
const moneyScale = 2

// PricingConfig carries the global pricing settings for one quote. Settings are
// passed explicitly per invocation rather than read from ambient state, so the
// engine stays pure and checkout-time values are reproducible later.
type PricingConfig struct {
	TaxRatePercent decimal.Decimal
	ShippingFee    decimal.Decimal
}

// Validate rejects negative tax rates and shipping fees.
func (c PricingConfig) Validate() error {
	if c.TaxRatePercent.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"taxRatePercent", fmt.Errorf("%s is negative", c.TaxRatePercent))
	}
	if c.ShippingFee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"shippingFee", fmt.Errorf("%s is negative", c.ShippingFee))
	}
	return nil
}

// PricingEngine is a stateless domain service computing the monetary breakdown
// of a cart: subtotal, tax, shipping, discount, and grand total.
//
// The computation is a pure function of its inputs. It reads no external price
// sources; line items already carry their frozen prices, so checkout and every
// later detail view derive the identical breakdown.
//
// Rules:
//   - subtotal = sum of line totals (food unit price x qty, combo bundle x qty)
//   - tax = subtotal x taxRate / 100
//   - shipping = 0 for an empty-value cart, the flat fee otherwise
//   - grandTotal = max(subtotal + tax + shipping - discount, 0)
//
// Intermediate sums are exact; each component is rounded half-up to two
// fractional digits once at the end, and the grand total is computed from the
// rounded components so the stored breakdown always round-trips.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Quote computes the frozen totals for the given lines, discount amount, and
// pricing settings. The couponCode is recorded on the totals verbatim; the
// discount amount must already be evaluated by the coupon model.
func (PricingEngine) Quote(
	lines []order.LineItem,
	discount decimal.Decimal,
	couponCode string,
	config PricingConfig,
) (order.Totals, error) {
	if err := config.Validate(); err != nil {
		return order.Totals{}, err
	}
	if discount.IsNegative() {
		return order.Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"discount", fmt.Errorf("%s is negative", discount))
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total())
	}

	tax := subtotal.Mul(config.TaxRatePercent).Div(decimal.NewFromInt(100))

	shipping := decimal.Zero
	if !subtotal.IsZero() {
		shipping = config.ShippingFee
	}

	subtotal = subtotal.Round(moneyScale)
	tax = tax.Round(moneyScale)
	shipping = shipping.Round(moneyScale)
	discount = discount.Round(moneyScale)

	grandTotal := subtotal.Add(tax).Add(shipping).Sub(discount)
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}

	return order.NewTotals(subtotal, tax, shipping, discount, grandTotal, couponCode)
}
