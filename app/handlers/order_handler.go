package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/utils/listquery"
	"github.com/Rakhulsr/storefront-api/app/validators"
	"github.com/gorilla/mux"
)

const maxWebhookBody = 64 << 10

type OrderHandler struct {
	Responder
	service  *services.OrderService
	validate *validators.Validator
	schema   listquery.Schema
}

func NewOrderHandler(resp Responder, service *services.OrderService, v *validators.Validator, schema listquery.Schema) *OrderHandler {
	return &OrderHandler{Responder: resp, service: service, validate: v, schema: schema}
}

type orderResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

func (h *OrderHandler) cartID(r *http.Request) (string, error) {
	id := mux.Vars(r)["cartId"]
	return id, h.validate.ID("cart", id)
}

func (h *OrderHandler) orderID(r *http.Request) (string, error) {
	id := mux.Vars(r)["id"]
	return id, h.validate.ID("order", id)
}

func (h *OrderHandler) CreateCashOrder(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	cartID, err := h.cartID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	var in validators.CreateOrder
	if _, err := h.validate.Bind(r, &in, validators.Subject{UserID: user.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	order, err := h.service.CreateCashOrder(r.Context(), user, cartID, in.Alias())
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.expand(order)
	h.JSON(w, http.StatusCreated, orderResponse{Status: "success", Data: order})
}

// CheckoutSession reads the shipping address alias from the query string.
func (h *OrderHandler) CheckoutSession(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	cartID, err := h.cartID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	alias := strings.TrimSpace(r.URL.Query().Get("shippingAddress"))
	if alias == "" {
		errs := &helpers.ValidationError{}
		errs.Errors = append(errs.Errors, helpers.FieldError{Msg: "Order shippingAddress is required", Path: "shippingAddress", Location: "query"})
		h.Error(w, r, errs)
		return
	}

	session, err := h.service.CreateCheckoutSession(r.Context(), user, cartID, alias)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"status": "success", "session": session})
}

// Webhook needs the raw body for signature verification.
func (h *OrderHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		slog.Warn("Webhook: could not read body", "error", err)
		h.Error(w, r, helpers.BadRequest("Webhook Error: %s", err.Error()))
		return
	}
	if err := h.service.HandleWebhook(r.Context(), body); err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	q := listquery.Parse(r.URL.Query(), h.schema)
	page, err := h.service.List(r.Context(), user, q)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	expandAll(h.Responder, page.Data)
	h.JSON(w, http.StatusOK, page)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	id, err := h.orderID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	order, err := h.service.Get(r.Context(), user, id)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.expand(order)
	h.JSON(w, http.StatusOK, orderResponse{Status: "success", Data: order})
}

func (h *OrderHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := h.orderID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	order, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.expand(order)
	h.JSON(w, http.StatusOK, orderResponse{Status: "success", Data: order})
}

func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, err := h.orderID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	order, err := h.service.MarkDelivered(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.expand(order)
	h.JSON(w, http.StatusOK, orderResponse{Status: "success", Data: order})
}
