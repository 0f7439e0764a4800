package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                 string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Title              string           `gorm:"size:100;not null;uniqueIndex" json:"title"`
	Slug               string           `gorm:"size:128;not null;index" json:"slug"`
	Description        string           `gorm:"type:text;not null" json:"description"`
	Quantity           int              `gorm:"not null;default:0" json:"quantity"`
	Sold               int              `gorm:"not null;default:0" json:"sold"`
	Price              decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	PriceAfterDiscount *decimal.Decimal `gorm:"type:decimal(16,2)" json:"priceAfterDiscount,omitempty"`
	Colors             StringList       `gorm:"type:json" json:"colors"`
	ImageCover         string           `gorm:"size:255;not null" json:"imageCover"`
	Images             StringList       `gorm:"type:json" json:"images"`
	CategoryID         string           `gorm:"size:36;not null;index" json:"categoryId"`
	Category           *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategories      StringList       `gorm:"type:json" json:"subcategories"`
	BrandID            *string          `gorm:"size:36;index" json:"brand,omitempty"`
	RatingsAverage     float64          `gorm:"type:decimal(2,1);not null;default:0" json:"ratingsAverage"`
	RatingsQuantity    int              `gorm:"not null;default:0" json:"ratingsQuantity"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	ensureID(&p.ID)
	return
}

const DiscountPriceMsg = "Price after discount must be below than the default price"

// DiscountAbovePrice lays price changes over the stored prices and reports
// a discounted price that would end up above the regular one.
func (p *Product) DiscountAbovePrice(changes map[string]any) (decimal.Decimal, bool) {
	price, discounted := p.Price, p.PriceAfterDiscount
	if v, ok := changes["price"].(decimal.Decimal); ok {
		price = v
	}
	if v, ok := changes["price_after_discount"].(decimal.Decimal); ok {
		discounted = &v
	}
	if discounted == nil {
		return decimal.Zero, false
	}
	return *discounted, discounted.GreaterThan(price)
}

func (p *Product) ImageFiles() []string {
	return collectPaths(ProductImageDir, append([]string{p.ImageCover}, p.Images...)...)
}

func (p *Product) ExpandImageURLs(baseURL string) {
	p.ImageCover = imageURL(baseURL, ProductImageDir, p.ImageCover)
	images := make(StringList, len(p.Images))
	for i, img := range p.Images {
		images[i] = imageURL(baseURL, ProductImageDir, img)
	}
	p.Images = images
}

