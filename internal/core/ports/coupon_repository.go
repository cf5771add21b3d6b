package ports

import (
	"context"

	"orderflow/internal/core/domain/model/coupon"
)

// CouponRepository defines the persistence contract for coupon aggregates.
// Coupons are identified by their canonical (upper-case) code.
type CouponRepository interface {
	// Add persists a new coupon. The code must not already exist.
	Add(ctx context.Context, aggregate *coupon.Coupon) error

	// Update persists changes to an existing coupon.
	Update(ctx context.Context, aggregate *coupon.Coupon) error

	// GetByCode retrieves a coupon by its code. The lookup normalizes the
	// code, so "summer10" and "SUMMER10" resolve to the same coupon.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// GetAllExpiredActive retrieves coupons that are still flagged active but
	// whose expiry has passed. Used by the expiry sweep job.
	GetAllExpiredActive(ctx context.Context) ([]*coupon.Coupon, error)
}
