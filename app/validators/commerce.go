package validators

import (
	"strings"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/shopspring/decimal"
)

const couponTakenMsg = "There is a coupon with that name '%s', try to pick another name!"

type CouponCreate struct {
	Name     *string          `json:"name" validate:"required,min=1,max=64" msg:"*=Coupon name is required"`
	Discount *decimal.Decimal `json:"discount" validate:"required,gte=0,lte=100" msg:"required=Coupon discount is required;*=Coupon discount must be a number between [0 -> 100]"`
	Expire   *Date            `json:"expire" validate:"required" msg:"*=Coupon expire date is required"`
}

func (in *CouponCreate) check(c *Checks) {
	c.Unique("name", "coupons", "name", couponName(in.Name), couponTakenMsg)
}

func (in *CouponCreate) Model() *models.Coupon {
	return &models.Coupon{Name: couponName(in.Name), Discount: *in.Discount, Expire: in.Expire.Time}
}

type CouponUpdate struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=64"`
	Discount *decimal.Decimal `json:"discount" validate:"omitempty,gte=0,lte=100" msg:"*=Coupon discount must be a number between [0 -> 100]"`
	Expire   *Date            `json:"expire"`
}

func (in *CouponUpdate) check(c *Checks) {
	c.Unique("name", "coupons", "name", couponName(in.Name), couponTakenMsg)
}

func (in *CouponUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = couponName(in.Name)
	}
	if in.Discount != nil {
		changes["discount"] = *in.Discount
	}
	if in.Expire != nil {
		changes["expire"] = in.Expire.Time
	}
	return changes
}

// Coupon names are stored upper-cased so lookups ignore case.
func couponName(p *string) string {
	return strings.ToUpper(trimmed(p))
}

// ReviewCreate takes its product from the body or, on nested routes, from
// the path through Subject.Defaults. The author is always the caller.
type ReviewCreate struct {
	Title   *string `json:"title" validate:"omitempty,min=2,max=32" msg:"min=Too short review title;max=Too long review title"`
	Ratings *int    `json:"ratings" validate:"required,min=1,max=5" msg:"required=Review ratings is required;*=Ratings value must be between 1 to 5"`
	Product *string `json:"product" validate:"required,uuid" msg:"required=Review must belong to a product;uuid=Invalid product id format"`
	User    *string `json:"user" validate:"omitempty,uuid" msg:"*=Invalid user id format"`
}

func (in *ReviewCreate) check(c *Checks) {
	c.Exists("product", "products", str(in.Product), "There is no product with this id: %s")
}

func (in *ReviewCreate) Model() *models.Review {
	return &models.Review{Title: trimmed(in.Title), Ratings: *in.Ratings, ProductID: *in.Product, UserID: str(in.User)}
}

type ReviewUpdate struct {
	Title   *string `json:"title" validate:"omitempty,min=2,max=32" msg:"min=Too short review title;max=Too long review title"`
	Ratings *int    `json:"ratings" validate:"omitempty,min=1,max=5" msg:"*=Ratings value must be between 1 to 5"`
}

func (in *ReviewUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if in.Title != nil {
		changes["title"] = trimmed(in.Title)
	}
	if in.Ratings != nil {
		changes["ratings"] = *in.Ratings
	}
	return changes
}

type CartAdd struct {
	ProductID *string `json:"productId" validate:"required,uuid" msg:"required=productId is required;uuid=Invalid product id format"`
	Color     *string `json:"color" validate:"omitempty,max=32"`
}

func (in *CartAdd) Item() (productID, color string) {
	return *in.ProductID, trimmed(in.Color)
}

// CartQuantity removes the line when quantity is absent or not positive.
type CartQuantity struct {
	Quantity *int `json:"quantity"`
}

func (in *CartQuantity) Value() int {
	if in.Quantity == nil {
		return 0
	}
	return *in.Quantity
}

type ApplyCoupon struct {
	Coupon *string `json:"coupon" validate:"required,min=1" msg:"*=coupon name is required"`
}

func (in *ApplyCoupon) Name() string {
	return couponName(in.Coupon)
}

type CreateOrder struct {
	ShippingAddress *string `json:"shippingAddress" validate:"required,min=1" msg:"*=Order shippingAddress is required"`
}

func (in *CreateOrder) Alias() string {
	return trimmed(in.ShippingAddress)
}

type WishlistAdd struct {
	ProductID *string `json:"productId" validate:"required,uuid" msg:"required=productId is required;uuid=Invalid product id format"`
}

func (in *WishlistAdd) check(c *Checks) {
	c.Exists("productId", "products", str(in.ProductID), "There is no product with this id: %s")
}
