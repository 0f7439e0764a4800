package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/storefront-api/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	FindByUser(ctx context.Context, userID string) (*models.Cart, error)
	FindByID(ctx context.Context, id string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	DeleteByUser(ctx context.Context, userID string) (bool, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db}
}

func (r *cartRepository) find(ctx context.Context, query string, arg string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Where(query, arg).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

func (r *cartRepository) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	return r.find(ctx, "user_id = ?", userID)
}

func (r *cartRepository) FindByID(ctx context.Context, id string) (*models.Cart, error) {
	return r.find(ctx, "id = ?", id)
}

// Save upserts the cart and makes its stored lines match cart.CartItems.
func (r *cartRepository) Save(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(cart).Error; err != nil {
			return fmt.Errorf("save cart %s: %w", cart.ID, err)
		}

		keep := make([]string, 0, len(cart.CartItems))
		for i := range cart.CartItems {
			cart.CartItems[i].CartID = cart.ID
			keep = append(keep, cart.CartItems[i].ID)
		}
		stale := tx.Where("cart_id = ?", cart.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("prune cart items %s: %w", cart.ID, err)
		}

		for i := range cart.CartItems {
			if err := tx.Omit(clause.Associations).Save(&cart.CartItems[i]).Error; err != nil {
				return fmt.Errorf("save cart item %s: %w", cart.CartItems[i].ID, err)
			}
		}
		return nil
	})
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&cart)
		deleted = result.RowsAffected > 0
		return result.Error
	})
	if err != nil {
		return false, fmt.Errorf("delete cart of %s: %w", userID, err)
	}
	return deleted, nil
}
