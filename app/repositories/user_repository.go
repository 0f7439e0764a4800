package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/storefront-api/app/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetCode(ctx context.Context, codeHash string, now time.Time) (*models.User, error)
	UpdateFields(ctx context.Context, id string, changes map[string]any) (*models.User, error)

	Wishlist(ctx context.Context, userID string) ([]models.Product, error)
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.Active = true
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Addresses").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Addresses").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByResetCode(ctx context.Context, codeHash string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("password_reset_code = ? AND password_reset_expires > ?", codeHash, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by reset code: %w", err)
	}
	return &user, nil
}

// UpdateFields applies a partial update; nil map values clear the column.
func (r *userRepository) UpdateFields(ctx context.Context, id string, changes map[string]any) (*models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return nil, fmt.Errorf("update user %s: %w", id, result.Error)
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) Wishlist(ctx context.Context, userID string) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Association("Wishlist").
		Find(&products)
	if err != nil {
		return nil, fmt.Errorf("load wishlist for %s: %w", userID, err)
	}
	return products, nil
}

// AddToWishlist is idempotent: the join table key is (user_id, product_id).
func (r *userRepository) AddToWishlist(ctx context.Context, userID, productID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Omit("Wishlist.*").
		Association("Wishlist").
		Append(&models.Product{ID: productID})
	if err != nil {
		return fmt.Errorf("add %s to wishlist of %s: %w", productID, userID, err)
	}
	return nil
}

func (r *userRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Association("Wishlist").
		Delete(&models.Product{ID: productID})
	if err != nil {
		return fmt.Errorf("remove %s from wishlist of %s: %w", productID, userID, err)
	}
	return nil
}
