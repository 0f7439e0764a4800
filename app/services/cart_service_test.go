package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService(products ...*models.Product) (*CartService, *mockCartRepo) {
	carts := newMockCartRepo()
	coupons := &mockCouponRepo{coupons: map[string]*models.Coupon{
		"SAVE10":  {Name: "SAVE10", Discount: dec("10"), Expire: time.Now().Add(24 * time.Hour)},
		"EXPIRED": {Name: "EXPIRED", Discount: dec("50"), Expire: time.Now().Add(-time.Hour)},
	}}
	return NewCartService(carts, newMockProductRepo(products...), coupons), carts
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return helpers.StatusOf(err)
}

func TestCartService_AddItem_CreatesCartAndMerges(t *testing.T) {
	p := &models.Product{ID: "p1", Price: dec("100")}
	svc, carts := newTestCartService(p)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1", "red")
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", "p1", "red")
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)
	assert.True(t, cart.TotalCartPrice.Equal(dec("200")))
	assert.Len(t, carts.carts, 1)

	cart, err = svc.AddItem(ctx, "u1", "p1", "blue")
	require.NoError(t, err)
	assert.Len(t, cart.CartItems, 2)
	assert.True(t, cart.TotalCartPrice.Equal(dec("300")))
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	svc, _ := newTestCartService()
	_, err := svc.AddItem(context.Background(), "u1", "missing", "")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestCartService_Get_NoCart(t *testing.T) {
	svc, _ := newTestCartService()
	_, err := svc.Get(context.Background(), "u1")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.Contains(t, err.Error(), "There is no cart for this user id : u1")
}

func TestCartService_RemoveItem(t *testing.T) {
	svc, _ := newTestCartService(&models.Product{ID: "p1", Price: dec("40")}, &models.Product{ID: "p2", Price: dec("10")})
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "u1", "p1", "")
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", "p2", "")
	require.NoError(t, err)

	cart, err = svc.RemoveItem(ctx, "u1", cart.CartItems[0].ID)
	require.NoError(t, err)
	assert.Len(t, cart.CartItems, 1)
	assert.True(t, cart.TotalCartPrice.Equal(dec("10")))

	_, err = svc.RemoveItem(ctx, "u1", "nope")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	svc, _ := newTestCartService(&models.Product{ID: "p1", Price: dec("12.50")})
	ctx := context.Background()
	cart, err := svc.AddItem(ctx, "u1", "p1", "")
	require.NoError(t, err)

	cart, err = svc.UpdateItemQuantity(ctx, "u1", cart.CartItems[0].ID, 4)
	require.NoError(t, err)
	assert.True(t, cart.TotalCartPrice.Equal(dec("50")))
}

func TestCartService_ApplyCoupon(t *testing.T) {
	svc, _ := newTestCartService(&models.Product{ID: "p1", Price: dec("100")})
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "u1", "p1", "")
	require.NoError(t, err)

	cart, err := svc.ApplyCoupon(ctx, "u1", "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, cart.TotalPriceAfterDiscount)
	assert.True(t, cart.TotalPriceAfterDiscount.Equal(dec("90")))

	cart, err = svc.AddItem(ctx, "u1", "p1", "")
	require.NoError(t, err)
	assert.Nil(t, cart.TotalPriceAfterDiscount)
}

func TestCartService_ApplyCoupon_Invalid(t *testing.T) {
	svc, _ := newTestCartService(&models.Product{ID: "p1", Price: dec("100")})
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "u1", "p1", "")
	require.NoError(t, err)

	for _, name := range []string{"EXPIRED", "UNKNOWN"} {
		_, err := svc.ApplyCoupon(ctx, "u1", name)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err), name)
	}
}

func TestCartService_Clear(t *testing.T) {
	svc, carts := newTestCartService(&models.Product{ID: "p1", Price: dec("1")})
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "u1", "p1", "")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "u1"))
	assert.Empty(t, carts.carts)
	assert.Equal(t, http.StatusNotFound, statusOf(t, svc.Clear(ctx, "u1")))
}
