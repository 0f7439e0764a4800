package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/storefront-api/app/models"
	"gorm.io/gorm"
)

var ErrCartAlreadyCheckedOut = errors.New("cart already checked out")

// OrderPreloads are the associations returned with every order read.
var OrderPreloads = []Preload{
	{Field: "User", Columns: []string{"id", "name", "profile_img", "email", "phone"}},
	{Field: "CartItems.Product", Columns: []string{"id", "title", "image_cover"}},
}

type OrderRepository interface {
	PlaceOrder(ctx context.Context, order *models.Order, cartID string) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

// PlaceOrder persists the order, moves stock from quantity to sold for every
// line and deletes the cart, all in one transaction. A cart that is already
// gone aborts the transaction with ErrCartAlreadyCheckedOut.
func (r *gormOrderRepository) PlaceOrder(ctx context.Context, order *models.Order, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range order.CartItems {
			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Updates(map[string]any{
					"quantity": gorm.Expr("quantity - ?", item.Quantity),
					"sold":     gorm.Expr("sold + ?", item.Quantity),
				}).Error
			if err != nil {
				return fmt.Errorf("adjust stock for %s: %w", item.ProductID, err)
			}
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("delete cart items %s: %w", cartID, err)
		}
		result := tx.Where("id = ?", cartID).Delete(&models.Cart{})
		if result.Error != nil {
			return fmt.Errorf("delete cart %s: %w", cartID, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCartAlreadyCheckedOut
		}
		return nil
	})
}

func (r *gormOrderRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("payment_session_id = ?", sessionID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order by session %s: %w", sessionID, err)
	}
	return &order, nil
}
