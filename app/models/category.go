package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name      string    `gorm:"size:32;not null;uniqueIndex" json:"name"`
	Slug      string    `gorm:"size:64;not null;index" json:"slug"`
	Image     string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&c.ID)
	return
}

func (c *Category) ImageFiles() []string {
	return collectPaths(CategoryImageDir, c.Image)
}

func (c *Category) ExpandImageURLs(baseURL string) {
	c.Image = imageURL(baseURL, CategoryImageDir, c.Image)
}

type Subcategory struct {
	ID         string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name       string    `gorm:"size:32;not null;uniqueIndex" json:"name"`
	Slug       string    `gorm:"size:64;not null;index" json:"slug"`
	CategoryID string    `gorm:"size:36;not null;index" json:"category"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&s.ID)
	return
}

type Brand struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name      string    `gorm:"size:32;not null;uniqueIndex" json:"name"`
	Slug      string    `gorm:"size:64;not null;index" json:"slug"`
	Image     string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Brand) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&b.ID)
	return
}

func (b *Brand) ImageFiles() []string {
	return collectPaths(BrandImageDir, b.Image)
}

func (b *Brand) ExpandImageURLs(baseURL string) {
	b.Image = imageURL(baseURL, BrandImageDir, b.Image)
}
