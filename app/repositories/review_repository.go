package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/utils/calc"
	"gorm.io/gorm"
)

// ReviewRepository keeps the product rating aggregate in step with every
// review write by recomputing it inside the same transaction.
type ReviewRepository interface {
	FindByID(ctx context.Context, id string) (*models.Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) (models.RatingSummary, error)
	Update(ctx context.Context, review *models.Review, changes map[string]any) (models.RatingSummary, error)
	Delete(ctx context.Context, review *models.Review) (models.RatingSummary, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db}
}

func (r *reviewRepository) first(ctx context.Context, query string, args ...any) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "name") }).
		Where(query, args...).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *reviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.Review, error) {
	return r.first(ctx, "user_id = ? AND product_id = ?", userID, productID)
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) (models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		var err error
		summary, err = refreshRatings(tx, review.ProductID)
		return err
	})
	return summary, err
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review, changes map[string]any) (models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			if err := tx.Model(review).Updates(changes).Error; err != nil {
				return fmt.Errorf("update review %s: %w", review.ID, err)
			}
		}
		var err error
		summary, err = refreshRatings(tx, review.ProductID)
		return err
	})
	return summary, err
}

func (r *reviewRepository) Delete(ctx context.Context, review *models.Review) (models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Review{}, "id = ?", review.ID).Error; err != nil {
			return fmt.Errorf("delete review %s: %w", review.ID, err)
		}
		var err error
		summary, err = refreshRatings(tx, review.ProductID)
		return err
	})
	return summary, err
}

func refreshRatings(tx *gorm.DB, productID string) (models.RatingSummary, error) {
	var agg struct {
		Avg   *float64
		Count int
	}
	err := tx.Model(&models.Review{}).
		Select("AVG(ratings) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("aggregate ratings for %s: %w", productID, err)
	}

	summary := models.RatingSummary{Quantity: agg.Count}
	if agg.Count > 0 && agg.Avg != nil {
		summary.Average = calc.RoundRating(*agg.Avg)
	}
	err = tx.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]any{
		"ratings_average":  summary.Average,
		"ratings_quantity": summary.Quantity,
	}).Error
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("store ratings for %s: %w", productID, err)
	}
	return summary, nil
}
