package models

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID         string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID     string    `gorm:"size:36;not null;uniqueIndex:idx_address_user_alias" json:"-"`
	Alias      string    `gorm:"size:64;not null;uniqueIndex:idx_address_user_alias" json:"alias"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
	Phone      string    `gorm:"size:20" json:"phone,omitempty"`
	City       string    `gorm:"size:100" json:"city,omitempty"`
	PostalCode string    `gorm:"size:16" json:"postalCode,omitempty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&a.ID)
	return
}

// Snapshot copies the address into the denormalized form kept on orders.
func (a *Address) Snapshot() ShippingAddress {
	return ShippingAddress{
		Alias:      a.Alias,
		Details:    a.Details,
		Phone:      a.Phone,
		City:       a.City,
		PostalCode: a.PostalCode,
	}
}
