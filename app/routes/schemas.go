package routes

import "github.com/Rakhulsr/storefront-api/app/utils/listquery"

func named(extra map[string]string) map[string]string {
	cols := map[string]string{
		"id":        "id",
		"name":      "name",
		"slug":      "slug",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
	for k, v := range extra {
		cols[k] = v
	}
	return cols
}

var (
	categorySchema = listquery.Schema{
		Columns:       named(map[string]string{"image": "image"}),
		SearchColumns: []string{"name"},
	}
	subcategorySchema = listquery.Schema{
		Columns:       named(map[string]string{"category": "category_id"}),
		SearchColumns: []string{"name"},
		DefaultLimit:  5,
	}
	brandSchema = listquery.Schema{
		Columns:       named(map[string]string{"image": "image"}),
		SearchColumns: []string{"name"},
	}
	productSchema = listquery.Schema{
		Columns: map[string]string{
			"id":                 "id",
			"title":              "title",
			"slug":               "slug",
			"description":        "description",
			"quantity":           "quantity",
			"sold":               "sold",
			"price":              "price",
			"priceAfterDiscount": "price_after_discount",
			"colors":             "colors",
			"imageCover":         "image_cover",
			"images":             "images",
			"category":           "category_id",
			"subcategories":      "subcategories",
			"brand":              "brand_id",
			"ratingsAverage":     "ratings_average",
			"ratingsQuantity":    "ratings_quantity",
			"createdAt":          "created_at",
			"updatedAt":          "updated_at",
		},
		SearchColumns: []string{"title", "description"},
	}
	reviewSchema = listquery.Schema{
		Columns: map[string]string{
			"id":        "id",
			"title":     "title",
			"ratings":   "ratings",
			"user":      "user_id",
			"product":   "product_id",
			"createdAt": "created_at",
			"updatedAt": "updated_at",
		},
		SearchColumns: []string{"title"},
	}
	couponSchema = listquery.Schema{
		Columns: map[string]string{
			"id":        "id",
			"name":      "name",
			"discount":  "discount",
			"expire":    "expire",
			"createdAt": "created_at",
			"updatedAt": "updated_at",
		},
		SearchColumns: []string{"name"},
	}
	userSchema = listquery.Schema{
		Columns: named(map[string]string{
			"email":      "email",
			"phone":      "phone",
			"profileImg": "profile_img",
			"role":       "role",
			"active":     "active",
		}),
		SearchColumns: []string{"name"},
	}
	orderSchema = listquery.Schema{
		Columns: map[string]string{
			"id":                "id",
			"user":              "user_id",
			"totalOrderPrice":   "total_order_price",
			"paymentMethodType": "payment_method_type",
			"isPaid":            "is_paid",
			"paidAt":            "paid_at",
			"isDelivered":       "is_delivered",
			"deliveredAt":       "delivered_at",
			"createdAt":         "created_at",
			"updatedAt":         "updated_at",
		},
	}
)
