package handlers

import (
	"net/http"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/validators"
	"github.com/gorilla/mux"
)

type CartHandler struct {
	Responder
	service  *services.CartService
	validate *validators.Validator
}

func NewCartHandler(resp Responder, service *services.CartService, v *validators.Validator) *CartHandler {
	return &CartHandler{Responder: resp, service: service, validate: v}
}

type cartResponse struct {
	Status         string       `json:"status"`
	Message        string       `json:"message,omitempty"`
	NumOfCartItems int          `json:"numOfCartItems"`
	Data           *models.Cart `json:"data"`
}

func (h *CartHandler) cart(w http.ResponseWriter, cart *models.Cart, message string) {
	h.JSON(w, http.StatusOK, cartResponse{
		Status:         "success",
		Message:        message,
		NumOfCartItems: len(cart.CartItems),
		Data:           cart,
	})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	cart, err := h.service.Get(r.Context(), user.ID)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.cart(w, cart, "")
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	var in validators.CartAdd
	if _, err := h.validate.Bind(r, &in, validators.Subject{UserID: user.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	productID, color := in.Item()
	cart, err := h.service.AddItem(r.Context(), user.ID, productID, color)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.cart(w, cart, "Product added to cart successfully")
}

func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	itemID := mux.Vars(r)["itemId"]
	if err := h.validate.ID("cart item", itemID); err != nil {
		h.Error(w, r, err)
		return
	}
	var in validators.CartQuantity
	if _, err := h.validate.Bind(r, &in, validators.Subject{UserID: user.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	cart, err := h.service.UpdateItemQuantity(r.Context(), user.ID, itemID, in.Value())
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.cart(w, cart, "")
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	itemID := mux.Vars(r)["itemId"]
	if err := h.validate.ID("cart item", itemID); err != nil {
		h.Error(w, r, err)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), user.ID, itemID)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.cart(w, cart, "")
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if err := h.service.Clear(r.Context(), user.ID); err != nil {
		h.Error(w, r, err)
		return
	}
	h.NoContent(w)
}

func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	var in validators.ApplyCoupon
	if _, err := h.validate.Bind(r, &in, validators.Subject{UserID: user.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	cart, err := h.service.ApplyCoupon(r.Context(), user.ID, in.Name())
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.cart(w, cart, "")
}
