package models

import (
	"time"

	"github.com/Rakhulsr/storefront-api/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	ID                      string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID                  string           `gorm:"size:36;not null;index" json:"user"`
	CartItems               []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"cartItems"`
	TotalCartPrice          decimal.Decimal  `gorm:"type:decimal(16,2);not null;default:0" json:"totalCartPrice"`
	TotalPriceAfterDiscount *decimal.Decimal `gorm:"type:decimal(16,2)" json:"totalPriceAfterDiscount,omitempty"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&c.ID)
	return
}

// AddItem merges into the line with the same product and color, or appends
// a new line of quantity 1. The running total grows by one unit price.
func (c *Cart) AddItem(productID, color string, price decimal.Decimal) *CartItem {
	defer c.touch()
	c.TotalCartPrice = calc.Round2(c.TotalCartPrice.Add(price))
	for i := range c.CartItems {
		if c.CartItems[i].ProductID == productID && c.CartItems[i].Color == color {
			c.CartItems[i].Quantity++
			return &c.CartItems[i]
		}
	}
	c.CartItems = append(c.CartItems, CartItem{
		ID:        uuid.New().String(),
		CartID:    c.ID,
		ProductID: productID,
		Color:     color,
		Quantity:  1,
		Price:     price,
	})
	return &c.CartItems[len(c.CartItems)-1]
}

// RemoveItem drops the line and subtracts its full amount from the total.
func (c *Cart) RemoveItem(itemID string) bool {
	for i, item := range c.CartItems {
		if item.ID != itemID {
			continue
		}
		c.CartItems = append(c.CartItems[:i], c.CartItems[i+1:]...)
		c.TotalCartPrice = calc.Round2(c.TotalCartPrice.Sub(item.Subtotal()))
		if c.TotalCartPrice.IsNegative() {
			c.TotalCartPrice = decimal.Zero
		}
		c.touch()
		return true
	}
	return false
}

// SetItemQuantity sets the line quantity; zero or less removes the line.
// The total is recomputed from the lines afterwards.
func (c *Cart) SetItemQuantity(itemID string, quantity int) bool {
	for i := range c.CartItems {
		if c.CartItems[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			c.CartItems = append(c.CartItems[:i], c.CartItems[i+1:]...)
		} else {
			c.CartItems[i].Quantity = quantity
		}
		c.Recalculate()
		c.touch()
		return true
	}
	return false
}

func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.CartItems {
		total = total.Add(item.Subtotal())
	}
	c.TotalCartPrice = calc.Round2(total)
}

// ApplyDiscount records the discounted total for a percentage coupon.
func (c *Cart) ApplyDiscount(percent decimal.Decimal) {
	discounted := calc.Round2(c.TotalCartPrice.Sub(calc.CalculateDiscount(c.TotalCartPrice, percent)))
	c.TotalPriceAfterDiscount = &discounted
}

// PayableTotal is the discounted total when a coupon is applied.
func (c *Cart) PayableTotal() decimal.Decimal {
	if c.TotalPriceAfterDiscount != nil {
		return *c.TotalPriceAfterDiscount
	}
	return c.TotalCartPrice
}

func (c *Cart) IsEmpty() bool {
	return len(c.CartItems) == 0
}

// touch invalidates a previously applied coupon; item changes alter the base.
func (c *Cart) touch() {
	c.TotalPriceAfterDiscount = nil
}
