package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockReviewRepo recomputes the summary the way the storage layer does.
type mockReviewRepo struct {
	reviews map[string]*models.Review
	summary map[string]models.RatingSummary
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: map[string]*models.Review{}, summary: map[string]models.RatingSummary{}}
}

func (m *mockReviewRepo) refresh(productID string) models.RatingSummary {
	sum, n := 0, 0
	for _, r := range m.reviews {
		if r.ProductID == productID {
			sum += r.Ratings
			n++
		}
	}
	s := models.RatingSummary{Quantity: n}
	if n > 0 {
		s.Average = float64(sum) / float64(n)
	}
	m.summary[productID] = s
	return s
}

func (m *mockReviewRepo) FindByID(_ context.Context, id string) (*models.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (m *mockReviewRepo) FindByUserAndProduct(_ context.Context, userID, productID string) (*models.Review, error) {
	for _, r := range m.reviews {
		if r.UserID == userID && r.ProductID == productID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReviewRepo) Create(_ context.Context, review *models.Review) (models.RatingSummary, error) {
	review.ID = uuid.NewString()
	m.reviews[review.ID] = review
	return m.refresh(review.ProductID), nil
}

func (m *mockReviewRepo) Update(_ context.Context, review *models.Review, changes map[string]any) (models.RatingSummary, error) {
	stored := m.reviews[review.ID]
	if v, ok := changes["ratings"]; ok {
		stored.Ratings = v.(int)
	}
	if v, ok := changes["title"]; ok {
		stored.Title = v.(string)
	}
	return m.refresh(review.ProductID), nil
}

func (m *mockReviewRepo) Delete(_ context.Context, review *models.Review) (models.RatingSummary, error) {
	delete(m.reviews, review.ID)
	return m.refresh(review.ProductID), nil
}

func TestReviewService_CreateOncePerProduct(t *testing.T) {
	repo := newMockReviewRepo()
	svc := NewReviewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Review{UserID: "u1", ProductID: "p1", Ratings: 4})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Review{UserID: "u2", ProductID: "p1", Ratings: 5})
	require.NoError(t, err)

	assert.Equal(t, models.RatingSummary{Average: 4.5, Quantity: 2}, repo.summary["p1"])

	_, err = svc.Create(ctx, &models.Review{UserID: "u1", ProductID: "p1", Ratings: 1})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Equal(t, "You already created a review before on this product!", err.Error())
}

func TestReviewService_UpdateByAuthorOnly(t *testing.T) {
	repo := newMockReviewRepo()
	svc := NewReviewService(repo)
	ctx := context.Background()
	review, err := svc.Create(ctx, &models.Review{UserID: "u1", ProductID: "p1", Ratings: 2})
	require.NoError(t, err)

	admin := &models.User{ID: "admin", Role: models.RoleAdmin}
	_, err = svc.Update(ctx, admin, review.ID, map[string]any{"ratings": 5})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	author := &models.User{ID: "u1", Role: models.RoleUser}
	updated, err := svc.Update(ctx, author, review.ID, map[string]any{"ratings": 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Ratings)
	assert.Equal(t, 5.0, repo.summary["p1"].Average)
}

func TestReviewService_Delete(t *testing.T) {
	repo := newMockReviewRepo()
	svc := NewReviewService(repo)
	ctx := context.Background()
	review, err := svc.Create(ctx, &models.Review{UserID: "u1", ProductID: "p1", Ratings: 3})
	require.NoError(t, err)

	stranger := &models.User{ID: "u9", Role: models.RoleUser}
	_, err = svc.Delete(ctx, stranger, review.ID)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	manager := &models.User{ID: "m1", Role: models.RoleManager}
	_, err = svc.Delete(ctx, manager, review.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{}, repo.summary["p1"])

	_, err = svc.Delete(ctx, manager, review.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
