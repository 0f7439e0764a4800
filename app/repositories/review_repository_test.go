package repositories

import (
	"context"
	"testing"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_RatingsFollowWrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	product := seedProduct(t, db, "lamp", 5)

	first := &models.Review{UserID: "u1", ProductID: product.ID, Ratings: 4}
	summary, err := repo.Create(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Average: 4, Quantity: 1}, summary)

	second := &models.Review{UserID: "u2", ProductID: product.ID, Ratings: 5}
	summary, err = repo.Create(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Average: 4.5, Quantity: 2}, summary)

	third := &models.Review{UserID: "u3", ProductID: product.ID, Ratings: 5}
	summary, err = repo.Create(ctx, third)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Average: 4.7, Quantity: 3}, summary)

	got := reloadProduct(t, db, product.ID)
	assert.Equal(t, 4.7, got.RatingsAverage)
	assert.Equal(t, 3, got.RatingsQuantity)

	summary, err = repo.Update(ctx, third, map[string]any{"ratings": 1})
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Average: 3.3, Quantity: 3}, summary)

	for _, r := range []*models.Review{first, second, third} {
		summary, err = repo.Delete(ctx, r)
		require.NoError(t, err)
	}
	assert.Equal(t, models.RatingSummary{}, summary)

	got = reloadProduct(t, db, product.ID)
	assert.Zero(t, got.RatingsAverage)
	assert.Zero(t, got.RatingsQuantity)
}

func TestReviewRepository_FindByUserAndProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	product := seedProduct(t, db, "lamp", 5)

	review := &models.Review{UserID: "u1", ProductID: product.ID, Ratings: 3, Title: "fine"}
	_, err := repo.Create(ctx, review)
	require.NoError(t, err)

	found, err := repo.FindByUserAndProduct(ctx, "u1", product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, review.ID, found.ID)

	found, err = repo.FindByUserAndProduct(ctx, "u2", product.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	_, err = repo.Create(ctx, &models.Review{UserID: "u1", ProductID: product.ID, Ratings: 5})
	assert.Error(t, err)
	got := reloadProduct(t, db, product.ID)
	assert.Equal(t, 1, got.RatingsQuantity)
}
