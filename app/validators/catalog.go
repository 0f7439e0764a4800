package validators

import (
	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/shopspring/decimal"
)

type CategoryCreate struct {
	Name  *string `json:"name" validate:"required,min=3,max=32" msg:"required=Category name is required;min=Too short category name;max=Too long category name"`
	Image *string `json:"image" upload:"categories,category"`
}

func (in *CategoryCreate) check(c *Checks) {
	c.Unique("name", "categories", "name", str(in.Name), "There is a category with this name '%s' already, please pick a different one.")
}

func (in *CategoryCreate) Model() *models.Category {
	return &models.Category{Name: *in.Name, Slug: helpers.GenerateSlug(*in.Name), Image: str(in.Image)}
}

type CategoryUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=3,max=32" msg:"min=Too short category name;max=Too long category name"`
	Image *string `json:"image" upload:"categories,category"`
}

func (in *CategoryUpdate) check(c *Checks) {
	c.Unique("name", "categories", "name", str(in.Name), "There is a category with this name '%s' already, please pick a different one.")
}

func (in *CategoryUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
		changes["slug"] = helpers.GenerateSlug(*in.Name)
	}
	if in.Image != nil {
		changes["image"] = *in.Image
	}
	return changes
}

type SubcategoryCreate struct {
	Name     *string `json:"name" validate:"required,min=2,max=32" msg:"required=subcategory name is required;min=Too short subcategory name;max=Too long subcategory name"`
	Category *string `json:"category" validate:"required,uuid" msg:"required=subcategory must belong to a parent category;uuid=invalid category id format"`
}

func (in *SubcategoryCreate) check(c *Checks) {
	c.Unique("name", "subcategories", "name", str(in.Name), "There is already a subcategory with this name '%s' try another one")
	c.Exists("category", "categories", str(in.Category), "Parent category with this id: %s is not found")
}

func (in *SubcategoryCreate) Model() *models.Subcategory {
	return &models.Subcategory{Name: *in.Name, Slug: helpers.GenerateSlug(*in.Name), CategoryID: *in.Category}
}

type SubcategoryUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=32" msg:"min=Too short subcategory name;max=Too long subcategory name"`
	Category *string `json:"category" validate:"omitempty,uuid" msg:"uuid=invalid category id format"`
}

func (in *SubcategoryUpdate) check(c *Checks) {
	c.Unique("name", "subcategories", "name", str(in.Name), "There is already a subcategory with this name '%s' try another one")
	c.Exists("category", "categories", str(in.Category), "Parent category with this id: %s is not found")
}

func (in *SubcategoryUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
		changes["slug"] = helpers.GenerateSlug(*in.Name)
	}
	if in.Category != nil {
		changes["category_id"] = *in.Category
	}
	return changes
}

type BrandCreate struct {
	Name  *string `json:"name" validate:"required,min=3,max=32" msg:"required=Brand name is required;min=Too short brand name;max=Too long brand name"`
	Image *string `json:"image" upload:"brands,brand"`
}

func (in *BrandCreate) check(c *Checks) {
	c.Unique("name", "brands", "name", str(in.Name), "There is a brand with this name '%s' already, please pick a different one.")
}

func (in *BrandCreate) Model() *models.Brand {
	return &models.Brand{Name: *in.Name, Slug: helpers.GenerateSlug(*in.Name), Image: str(in.Image)}
}

type BrandUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=3,max=32" msg:"min=Too short brand name;max=Too long brand name"`
	Image *string `json:"image" upload:"brands,brand"`
}

func (in *BrandUpdate) check(c *Checks) {
	c.Unique("name", "brands", "name", str(in.Name), "There is a brand with this name '%s' already, please pick a different one.")
}

func (in *BrandUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
		changes["slug"] = helpers.GenerateSlug(*in.Name)
	}
	if in.Image != nil {
		changes["image"] = *in.Image
	}
	return changes
}

const discountMsg = models.DiscountPriceMsg

type ProductCreate struct {
	Title              *string          `json:"title" validate:"required,min=3,max=100" msg:"required=Product title is required;min=Product title must be at least 3 chars;max=Too long Product title"`
	Description        *string          `json:"description" validate:"required,min=20" msg:"required=Product description is required;min=Too short Product description"`
	Quantity           *int             `json:"quantity" validate:"required,min=0" msg:"required=Product quantity is required;min=Product quantity must be an integer number above 0"`
	Sold               *int             `json:"sold" validate:"omitempty,min=0" msg:"*=Product sold times number must be an integer number above 0"`
	Price              *decimal.Decimal `json:"price" validate:"required,gte=0,lte=2000000" msg:"required=Product price is required;*=Product price must be a number between [0 -> 2,000,000]"`
	PriceAfterDiscount *decimal.Decimal `json:"priceAfterDiscount" validate:"omitempty,gte=0,lte=2000000" msg:"*=Product priceAfterDiscount must be a number between [0 -> 2,000,000]"`
	Colors             []string         `json:"colors"`
	Images             []string         `json:"images" upload:"products,product"`
	ImageCover         *string          `json:"imageCover" validate:"required,min=1" msg:"*=Product imageCover is required" upload:"products,product"`
	RatingsAverage     *float64         `json:"ratingsAverage" validate:"omitempty,min=1,max=5" msg:"*=Product ratingsAverage must be a number between 1.0 and 5.0"`
	RatingsQuantity    *int             `json:"ratingsQuantity" validate:"omitempty,min=0" msg:"*=Product ratingsQuantity must be an integer number above 0"`
	Category           *string          `json:"category" validate:"required,uuid" msg:"required=Product must belong to a parent category;uuid=invalid category id format"`
	Subcategories      []string         `json:"subcategories" validate:"omitempty,dive,uuid" msg:"*=invalid subcategory id format"`
	Brand              *string          `json:"brand" validate:"omitempty,uuid" msg:"*=invalid brand id format"`
}

func (in *ProductCreate) check(c *Checks) {
	checkDiscount(c, in.Price, in.PriceAfterDiscount)
	c.Unique("title", "products", "title", str(in.Title), "There is a product with this title '%s' already, please pick a different one.")
	c.Exists("category", "categories", str(in.Category), "No category for this id: %s")
	c.Subcategories("subcategories", in.Subcategories, str(in.Category))
	c.Exists("brand", "brands", str(in.Brand), "No brand for this id: %s")
}

func (in *ProductCreate) Model() *models.Product {
	p := &models.Product{
		Title:              *in.Title,
		Slug:               helpers.GenerateSlug(*in.Title),
		Description:        *in.Description,
		Quantity:           *in.Quantity,
		Price:              *in.Price,
		PriceAfterDiscount: in.PriceAfterDiscount,
		Colors:             models.StringList(in.Colors),
		ImageCover:         *in.ImageCover,
		Images:             models.StringList(in.Images),
		CategoryID:         *in.Category,
		Subcategories:      models.StringList(Dedupe(in.Subcategories)),
		BrandID:            in.Brand,
	}
	if in.Sold != nil {
		p.Sold = *in.Sold
	}
	if in.RatingsAverage != nil {
		p.RatingsAverage = *in.RatingsAverage
	}
	if in.RatingsQuantity != nil {
		p.RatingsQuantity = *in.RatingsQuantity
	}
	return p
}

type ProductUpdate struct {
	Title              *string          `json:"title" validate:"omitempty,min=3,max=100" msg:"min=Too short Product title;max=Too long Product title"`
	Description        *string          `json:"description" validate:"omitempty,min=20" msg:"*=Too short Product description"`
	Quantity           *int             `json:"quantity" validate:"omitempty,min=0" msg:"*=Product quantity must be an integer number above 0"`
	Sold               *int             `json:"sold" validate:"omitempty,min=0" msg:"*=Product 'sold' times must be an integer number above 0"`
	Price              *decimal.Decimal `json:"price" validate:"omitempty,gte=0,lte=2000000" msg:"*=Product price must be a number between [0 -> 2,000,000]"`
	PriceAfterDiscount *decimal.Decimal `json:"priceAfterDiscount" validate:"omitempty,gte=0,lte=2000000" msg:"*=Product priceAfterDiscount must be a number between [0 -> 2,000,000]"`
	Colors             []string         `json:"colors"`
	Images             []string         `json:"images" upload:"products,product"`
	ImageCover         *string          `json:"imageCover" upload:"products,product"`
	RatingsAverage     *float64         `json:"ratingsAverage" validate:"omitempty,min=1,max=5" msg:"*=Product ratingsAverage must be a number between 1.0 and 5.0"`
	RatingsQuantity    *int             `json:"ratingsQuantity" validate:"omitempty,min=0" msg:"*=Product ratingsQuantity must be an integer number above 0"`
	Category           *string          `json:"category" validate:"omitempty,uuid" msg:"*=invalid category id format"`
	Subcategories      []string         `json:"subcategories" validate:"omitempty,dive,uuid" msg:"*=invalid subcategory id format"`
	Brand              *string          `json:"brand" validate:"omitempty,uuid" msg:"*=invalid brand id format"`
}

func (in *ProductUpdate) check(c *Checks) {
	checkDiscount(c, in.Price, in.PriceAfterDiscount)
	c.Unique("title", "products", "title", str(in.Title), "There is a product with this title '%s' already, please pick a different one.")
	c.Exists("category", "categories", str(in.Category), "No category for this id: %s")
	c.Subcategories("subcategories", in.Subcategories, str(in.Category))
	c.Exists("brand", "brands", str(in.Brand), "No brand for this id: %s")
}

func (in *ProductUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if in.Title != nil {
		changes["title"] = *in.Title
		changes["slug"] = helpers.GenerateSlug(*in.Title)
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.Quantity != nil {
		changes["quantity"] = *in.Quantity
	}
	if in.Sold != nil {
		changes["sold"] = *in.Sold
	}
	if in.Price != nil {
		changes["price"] = *in.Price
	}
	if in.PriceAfterDiscount != nil {
		changes["price_after_discount"] = *in.PriceAfterDiscount
	}
	if in.Colors != nil {
		changes["colors"] = models.StringList(in.Colors)
	}
	if in.Images != nil {
		changes["images"] = models.StringList(in.Images)
	}
	if in.ImageCover != nil {
		changes["image_cover"] = *in.ImageCover
	}
	if in.RatingsAverage != nil {
		changes["ratings_average"] = *in.RatingsAverage
	}
	if in.RatingsQuantity != nil {
		changes["ratings_quantity"] = *in.RatingsQuantity
	}
	if in.Category != nil {
		changes["category_id"] = *in.Category
	}
	if in.Subcategories != nil {
		changes["subcategories"] = models.StringList(Dedupe(in.Subcategories))
	}
	if in.Brand != nil {
		changes["brand_id"] = *in.Brand
	}
	return changes
}

// checkDiscount compares prices sent together. Updates that send one of
// them are checked against the stored product by the service.
func checkDiscount(c *Checks, price, discounted *decimal.Decimal) {
	if price == nil || discounted == nil {
		return
	}
	if discounted.GreaterThan(*price) {
		c.Fail("priceAfterDiscount", discountMsg, discounted.String())
	}
}
