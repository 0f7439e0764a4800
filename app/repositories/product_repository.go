package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/storefront-api/app/models"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db}
}

func (p *productRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &product, nil
}

type CouponRepository interface {
	FindByName(ctx context.Context, name string) (*models.Coupon, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db}
}

func (c *couponRepository) FindByName(ctx context.Context, name string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := c.db.WithContext(ctx).Where("name = ?", name).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find coupon %s: %w", name, err)
	}
	return &coupon, nil
}
