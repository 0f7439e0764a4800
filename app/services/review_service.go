package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"gorm.io/gorm"
)

// ReviewService owns review writes. Reads go through the generic resource
// endpoints; every write refreshes the product's rating aggregate.
type ReviewService struct {
	reviews repositories.ReviewRepository
}

func NewReviewService(reviews repositories.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	existing, err := s.reviews.FindByUserAndProduct(ctx, review.UserID, review.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, helpers.BadRequest("You already created a review before on this product!")
	}

	summary, err := s.reviews.Create(ctx, review)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.BadRequest("You already created a review before on this product!")
		}
		return nil, err
	}
	slog.Info("Create: review stored", "product_id", review.ProductID, "ratings_average", summary.Average, "ratings_quantity", summary.Quantity)
	return review, nil
}

// Update is allowed for the review's author only.
func (s *ReviewService) Update(ctx context.Context, user *models.User, id string, changes map[string]any) (*models.Review, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != user.ID {
		return nil, helpers.Forbidden("You are not allowed to perform this action")
	}

	if _, err := s.reviews.Update(ctx, review, changes); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

// Delete is allowed for the author, and for admins and managers.
func (s *ReviewService) Delete(ctx context.Context, user *models.User, id string) (*models.Review, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleUser && review.UserID != user.ID {
		return nil, helpers.Forbidden("You are not allowed to perform this action")
	}

	if _, err := s.reviews.Delete(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) find(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, helpers.DocumentNotFound(id)
	}
	return review, nil
}
