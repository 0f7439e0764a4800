package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID   string          `gorm:"size:36;not null;index" json:"-"`
	ProductID string          `gorm:"size:36;not null;index" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Color     string          `gorm:"size:50" json:"color,omitempty"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&oi.ID)
	return
}
