package couponrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/coupon"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Add saves a new coupon to the database.
func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing coupon to the database.
func (r *GormCouponRepository) Update(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("code = ?", dto.Code).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("coupon", dto.Code)
	}

	return nil
}

// GetByCode retrieves a coupon by its code, normalizing the lookup key.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized := coupon.NormalizeCode(code)
	if normalized == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", normalized)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllExpiredActive retrieves active coupons whose expiry has passed.
func (r *GormCouponRepository) GetAllExpiredActive(ctx context.Context) ([]*coupon.Coupon, error) {
	var dtos []CouponDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "active = ? AND expires_at <= NOW()", true).Error; err != nil {
		return nil, err
	}

	coupons := make([]*coupon.Coupon, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}

	return coupons, nil
}
