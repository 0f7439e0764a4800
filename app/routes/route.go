package routes

import (
	"net/http"

	"github.com/Rakhulsr/storefront-api/app/configs"
	"github.com/Rakhulsr/storefront-api/app/handlers"
	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/middlewares"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/utils/renderer"
	"github.com/Rakhulsr/storefront-api/app/utils/token"
	"github.com/Rakhulsr/storefront-api/app/utils/uploads"
	"github.com/Rakhulsr/storefront-api/app/validators"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router cannot build from the
// database alone.
type Dependencies struct {
	Gateway services.PaymentGateway
	Mailer  services.Mailer
}

type guards struct {
	protect func(http.Handler) http.Handler
	policy  middlewares.Policy
	rnd     *render.Render
}

func (g guards) auth(h http.HandlerFunc) http.Handler {
	return g.protect(h)
}

func (g guards) allow(resource middlewares.Resource, action middlewares.Action, h http.HandlerFunc) http.Handler {
	return g.protect(g.policy.Require(resource, action, g.rnd)(h))
}

func NewRouter(db *gorm.DB, cfg configs.ENV, deps Dependencies) *mux.Router {
	rnd := renderer.New(!cfg.IsProduction())
	resp := handlers.NewResponder(rnd, cfg.BaseURL)
	store := uploads.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes, cfg.Upload.MaxWidth)
	validate := validators.New(repositories.NewLookupRepository(db), store)
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.ExpireTime)

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)

	authService := services.NewAuthService(userRepo, tokens, deps.Mailer)
	userService := services.NewUserService(userRepo, repositories.NewAddressRepository(db), tokens)
	cartService := services.NewCartService(cartRepo, productRepo, repositories.NewCouponRepository(db))
	reviewService := services.NewReviewService(repositories.NewReviewRepository(db))
	orderService := services.NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewResourceRepository[models.Order](db, repositories.OrderPreloads...),
		cartRepo,
		userRepo,
		deps.Gateway,
		deps.Mailer,
		services.OrderPricing{TaxPrice: cfg.Order.TaxPrice, ShippingPrice: cfg.Order.ShippingPrice},
	)

	categories := handlers.NewResourceHandler(resp,
		services.NewResourceService(repositories.NewResourceRepository[models.Category](db)), validate, store,
		handlers.ResourceConfig[models.Category]{
			Label:     "category",
			Schema:    categorySchema,
			NewCreate: func() validators.Creator[models.Category] { return &validators.CategoryCreate{} },
			NewUpdate: func() validators.Updater { return &validators.CategoryUpdate{} },
		})
	subcategories := handlers.NewResourceHandler(resp,
		services.NewResourceService(repositories.NewResourceRepository[models.Subcategory](db)), validate, store,
		handlers.ResourceConfig[models.Subcategory]{
			Label:     "subcategory",
			Schema:    subcategorySchema,
			NewCreate: func() validators.Creator[models.Subcategory] { return &validators.SubcategoryCreate{} },
			NewUpdate: func() validators.Updater { return &validators.SubcategoryUpdate{} },
			Parent:    &handlers.Parent{Param: "categoryId", Label: "category", Column: "category_id", Field: "category"},
		})
	brands := handlers.NewResourceHandler(resp,
		services.NewResourceService(repositories.NewResourceRepository[models.Brand](db)), validate, store,
		handlers.ResourceConfig[models.Brand]{
			Label:     "brand",
			Schema:    brandSchema,
			NewCreate: func() validators.Creator[models.Brand] { return &validators.BrandCreate{} },
			NewUpdate: func() validators.Updater { return &validators.BrandUpdate{} },
		})
	products := handlers.NewResourceHandler(resp,
		services.NewResourceService(repositories.NewResourceRepository[models.Product](db,
			repositories.Preload{Field: "Category", Columns: []string{"id", "name"}})), validate, store,
		handlers.ResourceConfig[models.Product]{
			Label:     "product",
			Schema:    productSchema,
			NewCreate: func() validators.Creator[models.Product] { return &validators.ProductCreate{} },
			NewUpdate: func() validators.Updater { return &validators.ProductUpdate{} },
		})
	reviews := handlers.NewResourceHandler(resp,
		services.NewResourceService(repositories.NewResourceRepository[models.Review](db,
			repositories.Preload{Field: "User", Columns: []string{"id", "name"}})), validate, store,
		handlers.ResourceConfig[models.Review]{
			Label:  "review",
			Schema: reviewSchema,
			Parent: &handlers.Parent{Param: "productId", Label: "product", Column: "product_id", Field: "product"},
		})
	coupons := handlers.NewResourceHandler(resp,
		services.NewResourceService(repositories.NewResourceRepository[models.Coupon](db)), validate, store,
		handlers.ResourceConfig[models.Coupon]{
			Label:     "coupon",
			Schema:    couponSchema,
			NewCreate: func() validators.Creator[models.Coupon] { return &validators.CouponCreate{} },
			NewUpdate: func() validators.Updater { return &validators.CouponUpdate{} },
		})
	users := handlers.NewResourceHandler(resp,
		services.NewResourceService(repositories.NewResourceRepository[models.User](db)), validate, store,
		handlers.ResourceConfig[models.User]{
			Label:     "user",
			Schema:    userSchema,
			NewUpdate: func() validators.Updater { return &validators.UserUpdate{} },
		})

	authHandler := handlers.NewAuthHandler(resp, authService, validate)
	userHandler := handlers.NewUserHandler(resp, userService, validate, store)
	addressHandler := handlers.NewAddressHandler(resp, userService, validate)
	cartHandler := handlers.NewCartHandler(resp, cartService, validate)
	orderHandler := handlers.NewOrderHandler(resp, orderService, validate, orderSchema)
	reviewHandler := handlers.NewReviewHandler(resp, reviewService, validate)

	g := guards{
		protect: middlewares.Protect(authService, rnd),
		policy:  middlewares.DefaultPolicy,
		rnd:     rnd,
	}

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger, middlewares.Recoverer(rnd))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp.Error(w, r, helpers.NotFound("Can't find this route: %s", r.URL.Path))
	})

	router.HandleFunc("/webhook-checkout", orderHandler.Webhook).Methods(http.MethodPost)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.NotFoundHandler = router.NotFoundHandler

	api.HandleFunc("/categories", categories.List).Methods(http.MethodGet)
	api.Handle("/categories", g.allow(middlewares.Categories, middlewares.Create, categories.Create)).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", categories.Get).Methods(http.MethodGet)
	api.Handle("/categories/{id}", g.allow(middlewares.Categories, middlewares.Update, categories.Update)).Methods(http.MethodPut)
	api.Handle("/categories/{id}", g.allow(middlewares.Categories, middlewares.Delete, categories.Delete)).Methods(http.MethodDelete)

	for _, prefix := range []string{"/subcategories", "/categories/{categoryId}/subcategories"} {
		api.HandleFunc(prefix, subcategories.List).Methods(http.MethodGet)
		api.Handle(prefix, g.allow(middlewares.Subcategories, middlewares.Create, subcategories.Create)).Methods(http.MethodPost)
	}
	api.HandleFunc("/subcategories/{id}", subcategories.Get).Methods(http.MethodGet)
	api.Handle("/subcategories/{id}", g.allow(middlewares.Subcategories, middlewares.Update, subcategories.Update)).Methods(http.MethodPut)
	api.Handle("/subcategories/{id}", g.allow(middlewares.Subcategories, middlewares.Delete, subcategories.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/brands", brands.List).Methods(http.MethodGet)
	api.Handle("/brands", g.allow(middlewares.Brands, middlewares.Create, brands.Create)).Methods(http.MethodPost)
	api.HandleFunc("/brands/{id}", brands.Get).Methods(http.MethodGet)
	api.Handle("/brands/{id}", g.allow(middlewares.Brands, middlewares.Update, brands.Update)).Methods(http.MethodPut)
	api.Handle("/brands/{id}", g.allow(middlewares.Brands, middlewares.Delete, brands.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/products", products.List).Methods(http.MethodGet)
	api.Handle("/products", g.allow(middlewares.Products, middlewares.Create, products.Create)).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", products.Get).Methods(http.MethodGet)
	api.Handle("/products/{id}", g.allow(middlewares.Products, middlewares.Update, products.Update)).Methods(http.MethodPut)
	api.Handle("/products/{id}", g.allow(middlewares.Products, middlewares.Delete, products.Delete)).Methods(http.MethodDelete)

	for _, prefix := range []string{"/reviews", "/products/{productId}/reviews"} {
		api.HandleFunc(prefix, reviews.List).Methods(http.MethodGet)
		api.Handle(prefix, g.allow(middlewares.Reviews, middlewares.Create, reviewHandler.Create)).Methods(http.MethodPost)
	}
	api.HandleFunc("/reviews/{id}", reviews.Get).Methods(http.MethodGet)
	api.Handle("/reviews/{id}", g.allow(middlewares.Reviews, middlewares.Update, reviewHandler.Update)).Methods(http.MethodPut)
	api.Handle("/reviews/{id}", g.allow(middlewares.Reviews, middlewares.Delete, reviewHandler.Delete)).Methods(http.MethodDelete)

	api.Handle("/coupons", g.allow(middlewares.Coupons, middlewares.Read, coupons.List)).Methods(http.MethodGet)
	api.Handle("/coupons", g.allow(middlewares.Coupons, middlewares.Create, coupons.Create)).Methods(http.MethodPost)
	api.Handle("/coupons/{id}", g.allow(middlewares.Coupons, middlewares.Read, coupons.Get)).Methods(http.MethodGet)
	api.Handle("/coupons/{id}", g.allow(middlewares.Coupons, middlewares.Update, coupons.Update)).Methods(http.MethodPut)
	api.Handle("/coupons/{id}", g.allow(middlewares.Coupons, middlewares.Delete, coupons.Delete)).Methods(http.MethodDelete)

	api.Handle("/cart", g.allow(middlewares.Cart, middlewares.Read, cartHandler.Get)).Methods(http.MethodGet)
	api.Handle("/cart", g.allow(middlewares.Cart, middlewares.Create, cartHandler.AddItem)).Methods(http.MethodPost)
	api.Handle("/cart", g.allow(middlewares.Cart, middlewares.Delete, cartHandler.Clear)).Methods(http.MethodDelete)
	api.Handle("/cart/applyCoupon", g.allow(middlewares.Cart, middlewares.Update, cartHandler.ApplyCoupon)).Methods(http.MethodPut, http.MethodPost)
	api.Handle("/cart/{itemId}", g.allow(middlewares.Cart, middlewares.Update, cartHandler.UpdateItemQuantity)).Methods(http.MethodPut)
	api.Handle("/cart/{itemId}", g.allow(middlewares.Cart, middlewares.Delete, cartHandler.RemoveItem)).Methods(http.MethodDelete)

	api.Handle("/orders", g.allow(middlewares.Orders, middlewares.Read, orderHandler.List)).Methods(http.MethodGet)
	api.Handle("/orders/checkout-session/{cartId}", g.allow(middlewares.Orders, middlewares.Checkout, orderHandler.CheckoutSession)).Methods(http.MethodGet)
	api.Handle("/orders/{cartId}", g.allow(middlewares.Orders, middlewares.Checkout, orderHandler.CreateCashOrder)).Methods(http.MethodPost)
	api.Handle("/orders/{id}", g.allow(middlewares.Orders, middlewares.Read, orderHandler.Get)).Methods(http.MethodGet)
	api.Handle("/orders/{id}/pay", g.allow(middlewares.Orders, middlewares.Pay, orderHandler.MarkPaid)).Methods(http.MethodPut)
	api.Handle("/orders/{id}/deliver", g.allow(middlewares.Orders, middlewares.Deliver, orderHandler.MarkDelivered)).Methods(http.MethodPut)

	api.Handle("/users/getMe", g.auth(userHandler.GetMe)).Methods(http.MethodGet)
	api.Handle("/users/updateMe", g.auth(userHandler.UpdateMe)).Methods(http.MethodPut)
	api.Handle("/users/changeMyPassword", g.auth(userHandler.ChangeMyPassword)).Methods(http.MethodPut)
	api.Handle("/users/deleteMe", g.auth(userHandler.DeleteMe)).Methods(http.MethodDelete)
	api.Handle("/users", g.allow(middlewares.Users, middlewares.Read, users.List)).Methods(http.MethodGet)
	api.Handle("/users", g.allow(middlewares.Users, middlewares.Create, userHandler.Create)).Methods(http.MethodPost)
	api.Handle("/users/changePassword/{id}", g.allow(middlewares.Users, middlewares.Update, userHandler.ChangePassword)).Methods(http.MethodPut)
	api.Handle("/users/{id}", g.allow(middlewares.Users, middlewares.Read, users.Get)).Methods(http.MethodGet)
	api.Handle("/users/{id}", g.allow(middlewares.Users, middlewares.Update, users.Update)).Methods(http.MethodPut)
	api.Handle("/users/{id}", g.allow(middlewares.Users, middlewares.Delete, users.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgotPassword", authHandler.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/verifyResetPassword", authHandler.VerifyResetCode).Methods(http.MethodPost)
	api.HandleFunc("/auth/resetPassword", authHandler.ResetPassword).Methods(http.MethodPut)

	api.Handle("/wishlist", g.allow(middlewares.Wishlist, middlewares.Read, userHandler.Wishlist)).Methods(http.MethodGet)
	api.Handle("/wishlist", g.allow(middlewares.Wishlist, middlewares.Create, userHandler.AddToWishlist)).Methods(http.MethodPost)
	api.Handle("/wishlist/{productId}", g.allow(middlewares.Wishlist, middlewares.Delete, userHandler.RemoveFromWishlist)).Methods(http.MethodDelete)

	api.Handle("/addresses", g.allow(middlewares.Addresses, middlewares.Read, addressHandler.List)).Methods(http.MethodGet)
	api.Handle("/addresses", g.allow(middlewares.Addresses, middlewares.Create, addressHandler.Create)).Methods(http.MethodPost)
	api.Handle("/addresses/{addressId}", g.allow(middlewares.Addresses, middlewares.Read, addressHandler.Get)).Methods(http.MethodGet)
	api.Handle("/addresses/{addressId}", g.allow(middlewares.Addresses, middlewares.Update, addressHandler.Update)).Methods(http.MethodPut)
	api.Handle("/addresses/{addressId}", g.allow(middlewares.Addresses, middlewares.Delete, addressHandler.Delete)).Methods(http.MethodDelete)

	files := http.FileServer(http.Dir(store.Root()))
	for _, dir := range []string{models.CategoryImageDir, models.BrandImageDir, models.ProductImageDir, models.UserImageDir} {
		router.PathPrefix("/" + dir + "/").Handler(files).Methods(http.MethodGet, http.MethodHead)
	}

	return router
}
