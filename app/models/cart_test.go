package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func timeAt(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func TestCart_AddItemMergesSameProductAndColor(t *testing.T) {
	cart := &Cart{ID: "c1", UserID: "u1"}

	cart.AddItem("p1", "red", dec("10.50"))
	cart.AddItem("p1", "red", dec("10.50"))
	cart.AddItem("p1", "blue", dec("10.50"))

	require.Len(t, cart.CartItems, 2)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)
	assert.Equal(t, 1, cart.CartItems[1].Quantity)
	assert.Equal(t, "31.5", cart.TotalCartPrice.String())
	assert.NotEmpty(t, cart.CartItems[0].ID)
	assert.Equal(t, "c1", cart.CartItems[1].CartID)
}

func TestCart_RemoveItemSubtractsLineAmount(t *testing.T) {
	cart := &Cart{}
	id := cart.AddItem("p1", "", dec("5")).ID
	cart.AddItem("p1", "", dec("5"))
	cart.AddItem("p2", "", dec("2.25"))

	assert.True(t, cart.RemoveItem(id))
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, "2.25", cart.TotalCartPrice.String())
	assert.False(t, cart.RemoveItem("missing"))
}

func TestCart_SetItemQuantity(t *testing.T) {
	cart := &Cart{}
	firstID := cart.AddItem("p1", "", dec("3")).ID
	secondID := cart.AddItem("p2", "", dec("1.10")).ID

	require.True(t, cart.SetItemQuantity(firstID, 4))
	assert.Equal(t, "13.1", cart.TotalCartPrice.String())

	require.True(t, cart.SetItemQuantity(secondID, 0))
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, "12", cart.TotalCartPrice.String())

	assert.False(t, cart.SetItemQuantity("missing", 2))
}

func TestCart_TotalMatchesLinesAfterMutations(t *testing.T) {
	cart := &Cart{}
	a := cart.AddItem("p1", "", dec("19.99")).ID
	cart.AddItem("p2", "x", dec("0.01"))
	cart.AddItem("p1", "", dec("19.99"))
	cart.SetItemQuantity(a, 3)
	cart.AddItem("p3", "", dec("7.333"))

	sum := decimal.Zero
	for _, it := range cart.CartItems {
		sum = sum.Add(it.Subtotal())
	}
	assert.True(t, sum.Round(2).Equal(cart.TotalCartPrice), "lines %s total %s", sum, cart.TotalCartPrice)
}

func TestCart_ApplyDiscountAndReset(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("p1", "", dec("100"))

	cart.ApplyDiscount(dec("15"))
	require.NotNil(t, cart.TotalPriceAfterDiscount)
	assert.Equal(t, "85", cart.TotalPriceAfterDiscount.String())
	assert.Equal(t, "85", cart.PayableTotal().String())

	cart.AddItem("p2", "", dec("1"))
	assert.Nil(t, cart.TotalPriceAfterDiscount)
	assert.Equal(t, "101", cart.PayableTotal().String())
}

func TestNewOrderFromCart(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem("p1", "red", dec("10"))
	cart.AddItem("p1", "red", dec("10"))
	cart.ApplyDiscount(dec("50"))

	order := NewOrderFromCart(cart, ShippingAddress{Alias: "home"}, dec("1.5"), dec("2"), PaymentCash)

	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, "13.5", order.TotalOrderPrice.String())
	require.Len(t, order.CartItems, 1)
	assert.Equal(t, 2, order.CartItems[0].Quantity)
	assert.Equal(t, "red", order.CartItems[0].Color)
	assert.Equal(t, "home", order.ShippingAddress.Alias)
}

func TestProductImageURLs(t *testing.T) {
	p := &Product{ImageCover: "cover.jpeg", Images: StringList{"a.jpeg", "https://cdn/x.png"}}

	assert.Equal(t, []string{"products/cover.jpeg", "products/a.jpeg"}, p.ImageFiles())

	p.ExpandImageURLs("http://localhost:8000/")
	assert.Equal(t, "http://localhost:8000/products/cover.jpeg", p.ImageCover)
	assert.Equal(t, StringList{"http://localhost:8000/products/a.jpeg", "https://cdn/x.png"}, p.Images)
}

func TestStaleImages(t *testing.T) {
	before := &Product{ImageCover: "old.jpeg", Images: StringList{"keep.jpeg", "drop.jpeg"}}
	after := &Product{ImageCover: "new.jpeg", Images: StringList{"keep.jpeg"}}

	assert.ElementsMatch(t, []string{"products/old.jpeg", "products/drop.jpeg"}, StaleImages(before, after))
	assert.Equal(t, []string{"categories/c.png"}, StaleImages(&Category{Image: "c.png"}, nil))
}

func TestUserChangedPasswordAfter(t *testing.T) {
	u := &User{}
	now := timeAt(1_700_000_000)
	assert.False(t, u.ChangedPasswordAfter(now))

	changed := timeAt(1_700_000_100)
	u.PasswordChangedAt = &changed
	assert.True(t, u.ChangedPasswordAfter(now))
	assert.False(t, u.ChangedPasswordAfter(timeAt(1_700_000_100)))
}
