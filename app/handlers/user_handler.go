package handlers

import (
	"net/http"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/utils/uploads"
	"github.com/Rakhulsr/storefront-api/app/validators"
	"github.com/gorilla/mux"
)

// UserHandler serves the account endpoints that the generic resource
// handler does not: password changes, the caller's own profile and the
// wishlist.
type UserHandler struct {
	Responder
	service  *services.UserService
	validate *validators.Validator
	uploads  *uploads.Store
}

func NewUserHandler(resp Responder, service *services.UserService, v *validators.Validator, up *uploads.Store) *UserHandler {
	return &UserHandler{Responder: resp, service: service, validate: v, uploads: up}
}

type listResponse[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    []T    `json:"data"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validators.UserCreate
	uploaded, err := h.validate.Bind(r, &in, validators.Subject{})
	if err != nil {
		h.Error(w, r, err)
		return
	}

	user, err := h.service.Create(r.Context(), in.Model(), in.PlainPassword())
	if err != nil {
		h.uploads.Remove(uploaded)
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusCreated, user)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.validate.ID("user", id); err != nil {
		h.Error(w, r, err)
		return
	}
	var in validators.ChangePassword
	if _, err := h.validate.Bind(r, &in, validators.Subject{ID: id}); err != nil {
		h.Error(w, r, err)
		return
	}

	current, next := in.Passwords()
	user, err := h.service.ChangePassword(r.Context(), id, current, next)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusOK, user)
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	user, err := h.service.Me(r.Context(), caller.ID)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	var in validators.UpdateMe
	uploaded, err := h.validate.Bind(r, &in, validators.Subject{ID: caller.ID, UserID: caller.ID})
	if err != nil {
		h.Error(w, r, err)
		return
	}

	outcome, err := h.service.UpdateMe(r.Context(), caller.ID, in.Changes(), uploaded)
	h.uploads.Remove(outcome.Discard)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusOK, outcome.Doc)
}

func (h *UserHandler) ChangeMyPassword(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	var in validators.ChangePassword
	if _, err := h.validate.Bind(r, &in, validators.Subject{ID: caller.ID, UserID: caller.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	current, next := in.Passwords()
	user, tok, err := h.service.ChangeMyPassword(r.Context(), caller.ID, current, next)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.expand(user)
	h.JSON(w, http.StatusOK, tokenResponse{Data: user, Token: tok})
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	if err := h.service.Deactivate(r.Context(), caller.ID); err != nil {
		h.Error(w, r, err)
		return
	}
	h.NoContent(w)
}

func (h *UserHandler) wishlist(w http.ResponseWriter, products []models.Product, message string) {
	expandAll(h.Responder, products)
	resp := listResponse[models.Product]{Status: "success", Message: message, Data: products}
	if message == "" {
		n := len(products)
		resp.Results = &n
	}
	h.JSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	products, err := h.service.Wishlist(r.Context(), caller.ID)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.wishlist(w, products, "")
}

func (h *UserHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	var in validators.WishlistAdd
	if _, err := h.validate.Bind(r, &in, validators.Subject{UserID: caller.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	products, err := h.service.AddToWishlist(r.Context(), caller.ID, *in.ProductID)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.wishlist(w, products, "Product added successfully to your wishlist.")
}

func (h *UserHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	productID := mux.Vars(r)["productId"]
	if err := h.validate.ID("product", productID); err != nil {
		h.Error(w, r, err)
		return
	}

	products, err := h.service.RemoveFromWishlist(r.Context(), caller.ID, productID)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.wishlist(w, products, "Product removed successfully from your wishlist.")
}
