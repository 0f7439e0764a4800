package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Coupon struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name      string          `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Discount  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount"`
	Expire    time.Time       `gorm:"not null" json:"expire"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&c.ID)
	return
}

func (c *Coupon) ActiveAt(now time.Time) bool {
	return c.Expire.After(now)
}
