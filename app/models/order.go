package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

type ShippingAddress struct {
	Alias      string `gorm:"size:64" json:"alias"`
	Details    string `gorm:"type:text" json:"details,omitempty"`
	Phone      string `gorm:"size:20" json:"phone,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	PostalCode string `gorm:"size:16" json:"postalCode,omitempty"`
}

type Order struct {
	ID                string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID            string          `gorm:"size:36;not null;index" json:"userId"`
	User              *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CartItems         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"cartItems"`
	ShippingAddress   ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	TaxPrice          decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"taxPrice"`
	ShippingPrice     decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"shippingPrice"`
	TotalOrderPrice   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"totalOrderPrice"`
	PaymentMethodType string          `gorm:"size:10;not null;default:'cash'" json:"paymentMethodType"`
	IsPaid            bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt            *time.Time      `json:"paidAt,omitempty"`
	IsDelivered       bool            `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt       *time.Time      `json:"deliveredAt,omitempty"`
	PaymentSessionID  *string         `gorm:"size:64;uniqueIndex" json:"paymentSessionId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&o.ID)
	return
}

func (o *Order) ExpandImageURLs(baseURL string) {
	for i := range o.CartItems {
		if p := o.CartItems[i].Product; p != nil {
			p.ExpandImageURLs(baseURL)
		}
	}
	if o.User != nil {
		o.User.ExpandImageURLs(baseURL)
	}
}

// NewOrderFromCart snapshots the cart lines and price into a new order.
func NewOrderFromCart(cart *Cart, address ShippingAddress, tax, shipping decimal.Decimal, method string) *Order {
	items := make([]OrderItem, 0, len(cart.CartItems))
	for _, ci := range cart.CartItems {
		items = append(items, OrderItem{
			ProductID: ci.ProductID,
			Quantity:  ci.Quantity,
			Color:     ci.Color,
			Price:     ci.Price,
		})
	}
	return &Order{
		UserID:            cart.UserID,
		CartItems:         items,
		ShippingAddress:   address,
		TaxPrice:          tax,
		ShippingPrice:     shipping,
		TotalOrderPrice:   cart.PayableTotal().Add(tax).Add(shipping),
		PaymentMethodType: method,
	}
}
