package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/storefront-api/app/models"
	"gorm.io/gorm"
)

type AddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, userID, addressID string, changes map[string]any) (*models.Address, error)
	Delete(ctx context.Context, userID, addressID string) (bool, error)
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	addresses := []models.Address{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("list addresses for %s: %w", userID, err)
	}
	return addresses, nil
}

func (r *addressRepository) Create(ctx context.Context, address *models.Address) error {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return fmt.Errorf("create address for %s: %w", address.UserID, err)
	}
	return nil
}

// Update returns nil when the address does not belong to userID.
func (r *addressRepository) Update(ctx context.Context, userID, addressID string, changes map[string]any) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&address).Updates(changes).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("update address %s: %w", addressID, err)
	}
	return &address, nil
}

func (r *addressRepository) Delete(ctx context.Context, userID, addressID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
	if result.Error != nil {
		return false, fmt.Errorf("delete address %s: %w", addressID, result.Error)
	}
	return result.RowsAffected > 0, nil
}
