package middlewares

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/unrolled/render"
)

type Resource string

type Action string

const (
	Categories    Resource = "categories"
	Subcategories Resource = "subcategories"
	Brands        Resource = "brands"
	Products      Resource = "products"
	Reviews       Resource = "reviews"
	Coupons       Resource = "coupons"
	Cart          Resource = "cart"
	Orders        Resource = "orders"
	Users         Resource = "users"
	Wishlist      Resource = "wishlist"
	Addresses     Resource = "addresses"
)

const (
	Create   Action = "create"
	Read     Action = "read"
	Update   Action = "update"
	Delete   Action = "delete"
	Checkout Action = "checkout"
	Pay      Action = "pay"
	Deliver  Action = "deliver"
)

var (
	staff     = []string{models.RoleAdmin, models.RoleManager}
	adminOnly = []string{models.RoleAdmin}
	customer  = []string{models.RoleUser}
	everyone  = []string{models.RoleUser, models.RoleManager, models.RoleAdmin}
)

// Policy maps each guarded (resource, action) pair to the roles allowed to
// perform it. Pairs absent from the table are open to any authenticated user.
type Policy map[Resource]map[Action][]string

var DefaultPolicy = Policy{
	Categories:    {Create: staff, Update: staff, Delete: adminOnly},
	Subcategories: {Create: staff, Update: staff, Delete: adminOnly},
	Brands:        {Create: staff, Update: staff, Delete: adminOnly},
	Products:      {Create: staff, Update: staff, Delete: adminOnly},
	Reviews:       {Create: customer, Update: customer, Delete: everyone},
	Coupons:       {Create: staff, Read: staff, Update: staff, Delete: staff},
	Cart:          {Create: customer, Read: customer, Update: customer, Delete: customer},
	Orders:        {Read: everyone, Checkout: customer, Pay: staff, Deliver: staff},
	Users:         {Create: staff, Read: staff, Update: staff, Delete: staff},
	Wishlist:      {Create: customer, Read: customer, Delete: customer},
	Addresses:     {Create: customer, Read: customer, Update: customer, Delete: customer},
}

// Allowed reports whether role may perform action on resource.
func (p Policy) Allowed(resource Resource, action Action, role string) bool {
	roles, ok := p[resource][action]
	if !ok {
		return true
	}
	return slices.Contains(roles, role)
}

// Require guards a route with the policy. It runs after Protect.
func (p Policy) Require(resource Resource, action Action, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.UserFromContext(r.Context())
			if user == nil {
				status, body := helpers.ErrorResponse(helpers.Unauthorized("Not authenticated, Login first"))
				_ = rnd.JSON(w, status, body)
				return
			}
			if !p.Allowed(resource, action, user.Role) {
				slog.Info("Require: role not allowed", "user_id", user.ID, "role", user.Role, "resource", resource, "action", action)
				status, body := helpers.ErrorResponse(helpers.Forbidden("Not authorized"))
				_ = rnd.JSON(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
