package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/coupon"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApplyCouponQueryHandler evaluates a coupon against a subtotal using the
// domain eligibility rules, without touching any order.
type ApplyCouponQueryHandler struct {
	db *gorm.DB
}

// NewApplyCouponQueryHandler creates a handler for coupon preview queries.
func NewApplyCouponQueryHandler(db *gorm.DB) ApplyCouponQueryHandler {
	return ApplyCouponQueryHandler{db: db}
}

// Handle executes the coupon preview. An unknown, inactive, expired, or
// not-yet-eligible coupon fails with the same errors checkout would produce.
func (h ApplyCouponQueryHandler) Handle(
	ctx context.Context, query ApplyCouponQuery,
) (ApplyCouponQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ApplyCouponQueryResponse{}, err
	}

	normalized := coupon.NormalizeCode(query.Code())

	var (
		code            string
		discountPercent int
		minOrderAmount  decimal.Decimal
		expiresAt       time.Time
		active          bool
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT code, discount_percent, min_order_amount, expires_at, active
		FROM coupons
		WHERE code = ?
	`, normalized).Row()
	if err := row.Scan(&code, &discountPercent, &minOrderAmount, &expiresAt, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ApplyCouponQueryResponse{}, errs.NewObjectNotFoundError("coupon", normalized)
		}
		return ApplyCouponQueryResponse{}, err
	}

	aggregate, err := coupon.RestoreCoupon(code, discountPercent, minOrderAmount, expiresAt, active)
	if err != nil {
		return ApplyCouponQueryResponse{}, err
	}

	discount, err := aggregate.Apply(query.Subtotal(), time.Now().UTC())
	if err != nil {
		return ApplyCouponQueryResponse{}, err
	}

	return ApplyCouponQueryResponse{
		Code:            aggregate.Code(),
		DiscountPercent: aggregate.DiscountPercent(),
		Discount:        discount,
	}, nil
}
