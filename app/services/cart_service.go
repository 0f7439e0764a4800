package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/repositories"
)

type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	coupons  repositories.CouponRepository
	now      func() time.Time
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, coupons repositories.CouponRepository) *CartService {
	return &CartService{carts: carts, products: products, coupons: coupons, now: time.Now}
}

func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, helpers.NotFound("There is no cart for this user id : %s", userID)
	}
	return cart, nil
}

// AddItem creates the cart on first use. A product already in the cart with
// the same color gets its quantity bumped instead of a new line.
func (s *CartService) AddItem(ctx context.Context, userID, productID, color string) (*models.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, helpers.DocumentNotFound(productID)
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID}
	}

	cart.AddItem(product.ID, color, product.Price)
	if err := s.carts.Save(ctx, cart); err != nil {
		slog.Error("AddItem: failed to save cart", "user_id", userID, "product_id", productID, "error", err)
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveItem(itemID) {
		return nil, helpers.NotFound("There is no item for this id: %s", itemID)
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.SetItemQuantity(itemID, quantity) {
		return nil, helpers.NotFound("There is no item for this id: %s", itemID)
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	deleted, err := s.carts.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return helpers.NotFound("There is no cart for this user id : %s", userID)
	}
	return nil
}

func (s *CartService) ApplyCoupon(ctx context.Context, userID, couponName string) (*models.Cart, error) {
	coupon, err := s.coupons.FindByName(ctx, couponName)
	if err != nil {
		return nil, err
	}
	if coupon == nil || !coupon.ActiveAt(s.now()) {
		return nil, helpers.BadRequest("Coupon is invalid or has expired")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.ApplyDiscount(coupon.Discount)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
