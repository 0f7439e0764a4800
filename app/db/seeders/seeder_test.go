package seeders

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
	}
}

func TestPlan(t *testing.T) {
	categories, subs, brands, products := Plan(DefaultOptions(), sequence())

	require.Len(t, categories, 3)
	assert.Len(t, subs, 6)
	assert.Len(t, brands, 3)
	require.Len(t, products, 20)

	categoryIDs := map[string]bool{}
	for _, c := range categories {
		categoryIDs[c.ID] = true
		assert.NotEmpty(t, c.Slug)
		assert.LessOrEqual(t, len(c.Name), 32)
	}
	parentOf := map[string]string{}
	for _, s := range subs {
		assert.True(t, categoryIDs[s.CategoryID])
		parentOf[s.ID] = s.CategoryID
	}

	for _, p := range products {
		assert.True(t, categoryIDs[p.CategoryID])
		assert.True(t, p.Price.IsPositive())
		assert.NotEmpty(t, p.Colors)
		require.NotNil(t, p.BrandID)
		for _, sub := range p.Subcategories {
			assert.Equal(t, p.CategoryID, parentOf[sub])
		}
		if p.PriceAfterDiscount != nil {
			assert.True(t, p.PriceAfterDiscount.LessThan(p.Price))
		}
	}
}

func TestPlan_NoCategoriesSkipsProducts(t *testing.T) {
	_, _, _, products := Plan(Options{Brands: 1, Products: 5}, sequence())
	assert.Empty(t, products)
}
