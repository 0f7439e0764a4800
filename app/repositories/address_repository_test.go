package repositories

import (
	"context"
	"testing"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressRepository_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewAddressRepository(db)
	ctx := context.Background()

	home := &models.Address{UserID: "u1", Alias: "home", City: "Bandung"}
	require.NoError(t, repo.Create(ctx, home))
	require.NoError(t, repo.Create(ctx, &models.Address{UserID: "u1", Alias: "office"}))
	require.NoError(t, repo.Create(ctx, &models.Address{UserID: "u2", Alias: "home"}))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	updated, err := repo.Update(ctx, "u2", home.ID, map[string]any{"city": "Jakarta"})
	require.NoError(t, err)
	assert.Nil(t, updated)

	updated, err = repo.Update(ctx, "u1", home.ID, map[string]any{"city": "Jakarta"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Jakarta", updated.City)

	deleted, err := repo.Delete(ctx, "u2", home.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, "u1", home.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	list, err = repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "office", list[0].Alias)
}

func TestAddressRepository_AliasUniquePerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewAddressRepository(db)
	lookup := NewLookupRepository(db)
	ctx := context.Background()

	home := &models.Address{UserID: "u1", Alias: "home"}
	require.NoError(t, repo.Create(ctx, home))

	err := repo.Create(ctx, &models.Address{UserID: "u1", Alias: "home"})
	assert.Error(t, err)

	taken, err := lookup.AliasTaken(ctx, "u1", "home", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = lookup.AliasTaken(ctx, "u1", "home", home.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = lookup.AliasTaken(ctx, "u2", "home", "")
	require.NoError(t, err)
	assert.False(t, taken)
}
