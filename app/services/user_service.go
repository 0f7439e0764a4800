package services

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"github.com/Rakhulsr/storefront-api/app/utils/token"
	"gorm.io/gorm"
)

type UserService struct {
	users     repositories.UserRepository
	addresses repositories.AddressRepository
	tokens    *token.Manager
	now       func() time.Time
}

func NewUserService(users repositories.UserRepository, addresses repositories.AddressRepository, tokens *token.Manager) *UserService {
	return &UserService{users: users, addresses: addresses, tokens: tokens, now: time.Now}
}

// Create stores a user built by an admin, hashing the plain password.
func (s *UserService) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	hashed, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.Conflict("E-mail already in use")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, helpers.DocumentNotFound(userID)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new one
// and stamps passwordChangedAt so older tokens stop working.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) (*models.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !helpers.PasswordCompare(user.Password, []byte(current)) {
		return nil, helpers.BadRequest("Incorrect current password")
	}

	hashed, err := helpers.HashPassword(next)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateFields(ctx, userID, map[string]any{
		"password":            hashed,
		"password_changed_at": s.now(),
	})
}

// ChangeMyPassword also returns a new token for the caller.
func (s *UserService) ChangeMyPassword(ctx context.Context, userID, current, next string) (*models.User, string, error) {
	user, err := s.ChangePassword(ctx, userID, current, next)
	if err != nil {
		return nil, "", err
	}
	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

func (s *UserService) UpdateMe(ctx context.Context, userID string, changes map[string]any, uploaded []string) (Outcome[models.User], error) {
	before, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return Outcome[models.User]{Discard: uploaded}, err
	}
	if before == nil {
		return Outcome[models.User]{Discard: uploaded}, helpers.DocumentNotFound(userID)
	}
	after, err := s.users.UpdateFields(ctx, userID, changes)
	if err != nil {
		return Outcome[models.User]{Discard: uploaded}, storageError(err)
	}
	if after == nil {
		return Outcome[models.User]{Discard: uploaded}, helpers.DocumentNotFound(userID)
	}
	return Outcome[models.User]{Doc: after, Discard: models.StaleImages(before, after)}, nil
}

// Deactivate hides the account until its owner logs in again.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	_, err := s.users.UpdateFields(ctx, userID, map[string]any{"active": false})
	return err
}

func (s *UserService) Wishlist(ctx context.Context, userID string) ([]models.Product, error) {
	return s.users.Wishlist(ctx, userID)
}

func (s *UserService) AddToWishlist(ctx context.Context, userID, productID string) ([]models.Product, error) {
	if err := s.users.AddToWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.users.Wishlist(ctx, userID)
}

func (s *UserService) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]models.Product, error) {
	if err := s.users.RemoveFromWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.users.Wishlist(ctx, userID)
}

func (s *UserService) Addresses(ctx context.Context, userID string) ([]models.Address, error) {
	return s.addresses.ListByUser(ctx, userID)
}

func (s *UserService) Address(ctx context.Context, userID, addressID string) (*models.Address, error) {
	addresses, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		if addresses[i].ID == addressID {
			return &addresses[i], nil
		}
	}
	return nil, helpers.NotFound("There is no address for this id: %s", addressID)
}

func (s *UserService) AddAddress(ctx context.Context, address *models.Address) ([]models.Address, error) {
	if err := s.addresses.Create(ctx, address); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.Conflict("Address alias already in use")
		}
		return nil, err
	}
	return s.addresses.ListByUser(ctx, address.UserID)
}

func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID string, changes map[string]any) (*models.Address, error) {
	address, err := s.addresses.Update(ctx, userID, addressID, changes)
	if err != nil {
		return nil, storageError(err)
	}
	if address == nil {
		return nil, helpers.NotFound("There is no address for this id: %s", addressID)
	}
	return address, nil
}

func (s *UserService) RemoveAddress(ctx context.Context, userID, addressID string) ([]models.Address, error) {
	deleted, err := s.addresses.Delete(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, helpers.NotFound("There is no address for this id: %s", addressID)
	}
	return s.addresses.ListByUser(ctx, userID)
}
