package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineKind distinguishes catalog food references from combo bundles.
type LineKind string

const (
	LineKindFood  LineKind = "FOOD"
	LineKindCombo LineKind = "COMBO"
)

// LineKindFromString parses a persisted line kind.
func LineKindFromString(s string) (LineKind, error) {
	kind := LineKind(s)
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

// Validate checks that the kind belongs to the closed enum.
func (k LineKind) Validate() error {
	switch k {
	case LineKindFood, LineKindCombo:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"lineKind", fmt.Errorf("%q is not a valid line kind", string(k)))
	}
}

// LineItem is one priced line of an order: a food reference with a frozen unit
// price, or a combo reference with a frozen bundle price. Prices are captured
// at order-creation time and never recomputed, even if catalog prices change.
// A LineItem is owned exclusively by one order.
type LineItem struct {
	kind      LineKind
	itemID    string
	quantity  int
	unitPrice decimal.Decimal
}

// NewFoodLine creates a food line item. Quantity must be at least 1 and the
// unit price non-negative.
func NewFoodLine(foodID string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	return newLineItem(LineKindFood, foodID, quantity, unitPrice)
}

// NewComboLine creates a combo bundle line item with its frozen bundle price.
func NewComboLine(comboID string, quantity int, bundlePrice decimal.Decimal) (LineItem, error) {
	return newLineItem(LineKindCombo, comboID, quantity, bundlePrice)
}

// RestoreLineItem rebuilds a line item from persistence.
func RestoreLineItem(kind LineKind, itemID string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	if err := kind.Validate(); err != nil {
		return LineItem{}, err
	}
	return newLineItem(kind, itemID, quantity, unitPrice)
}

func newLineItem(kind LineKind, itemID string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	if itemID == "" {
		return LineItem{}, errs.NewValueIsRequiredError("itemID")
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not at least 1", quantity))
	}
	if unitPrice.IsNegative() {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice", fmt.Errorf("%s is negative", unitPrice))
	}

	return LineItem{
		kind:      kind,
		itemID:    itemID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// Kind returns whether the line references a food or a combo bundle.
func (l LineItem) Kind() LineKind {
	return l.kind
}

// ItemID returns the catalog reference of the food or combo.
func (l LineItem) ItemID() string {
	return l.itemID
}

// Quantity returns the ordered quantity.
func (l LineItem) Quantity() int {
	return l.quantity
}

// UnitPrice returns the frozen per-unit (or per-bundle) price.
func (l LineItem) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// Total returns unit price times quantity.
func (l LineItem) Total() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}
