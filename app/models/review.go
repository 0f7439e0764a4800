package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Title     string    `gorm:"size:255" json:"title,omitempty"`
	Ratings   int       `gorm:"not null" json:"ratings"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_review_user_product" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductID string    `gorm:"size:36;not null;uniqueIndex:idx_review_user_product;index" json:"product"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&r.ID)
	return
}

// RatingSummary is the aggregate stored back on the product.
type RatingSummary struct {
	Average  float64
	Quantity int
}
