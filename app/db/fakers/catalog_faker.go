package fakers

import (
	"math/rand"
	"strings"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var colors = []string{"black", "white", "red", "blue", "green", "silver"}

// label returns a capitalized word with a short random suffix so repeated
// runs do not collide on unique name columns.
func label(max int) string {
	word := faker.Word()
	if len(word) > 0 {
		word = strings.ToUpper(word[:1]) + word[1:]
	}
	name := word + " " + uuid.NewString()[:6]
	if len(name) > max {
		name = name[:max]
	}
	return name
}

func CategoryFaker() *models.Category {
	name := label(32)
	return &models.Category{Name: name, Slug: helpers.GenerateSlug(name)}
}

func SubcategoryFaker(category *models.Category) *models.Subcategory {
	name := label(32)
	return &models.Subcategory{Name: name, Slug: helpers.GenerateSlug(name), CategoryID: category.ID}
}

func BrandFaker() *models.Brand {
	name := label(32)
	return &models.Brand{Name: name, Slug: helpers.GenerateSlug(name)}
}

func ProductFaker(category *models.Category, subs []models.Subcategory, brand *models.Brand) *models.Product {
	title := label(100)
	price := fakePrice()

	product := &models.Product{
		Title:         title,
		Slug:          helpers.GenerateSlug(title),
		Description:   faker.Paragraph(),
		Quantity:      rand.Intn(50) + 1,
		Price:         price,
		Colors:        models.StringList{colors[rand.Intn(len(colors))]},
		ImageCover:    "product-placeholder.jpeg",
		Images:        models.StringList{},
		CategoryID:    category.ID,
		Subcategories: models.StringList{},
	}
	for _, s := range subs {
		if s.CategoryID == category.ID && rand.Intn(2) == 0 {
			product.Subcategories = append(product.Subcategories, s.ID)
		}
	}
	if brand != nil {
		product.BrandID = &brand.ID
	}
	if rand.Intn(3) == 0 {
		discounted := price.Mul(decimal.NewFromFloat(0.9)).Round(2)
		product.PriceAfterDiscount = &discounted
	}
	return product
}

func fakePrice() decimal.Decimal {
	return decimal.NewFromFloat(rand.Float64()*1000 + 1).Round(2)
}
