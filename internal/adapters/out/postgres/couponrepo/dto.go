// Package couponrepo provides data transfer objects and mapping functions for
// coupon persistence.
package couponrepo

import (
	"time"

	"orderflow/internal/core/domain/model/coupon"

	"github.com/shopspring/decimal"
)

// CouponDTO represents the database structure for persisting coupons.
// The canonical (upper-case) code is the primary key.
type CouponDTO struct {
	Code            string          `gorm:"primaryKey"`
	DiscountPercent int
	MinOrderAmount  decimal.Decimal `gorm:"type:numeric"`
	ExpiresAt       time.Time       `gorm:"index"`
	Active          bool            `gorm:"index"`
}

// TableName specifies the database table name for coupon entities.
func (CouponDTO) TableName() string {
	return "coupons"
}

// fromDomain converts a coupon aggregate to its database representation.
func fromDomain(aggregate *coupon.Coupon) CouponDTO {
	return CouponDTO{
		Code:            aggregate.Code(),
		DiscountPercent: aggregate.DiscountPercent(),
		MinOrderAmount:  aggregate.MinOrderAmount(),
		ExpiresAt:       aggregate.ExpiresAt(),
		Active:          aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a coupon aggregate.
func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	return coupon.RestoreCoupon(dto.Code, dto.DiscountPercent, dto.MinOrderAmount, dto.ExpiresAt, dto.Active)
}
