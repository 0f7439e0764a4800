package handlers

import (
	"net/http"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/validators"
	"github.com/gorilla/mux"
)

// ReviewHandler serves the review writes; reads go through the generic
// resource handler.
type ReviewHandler struct {
	Responder
	service  *services.ReviewService
	validate *validators.Validator
}

func NewReviewHandler(resp Responder, service *services.ReviewService, v *validators.Validator) *ReviewHandler {
	return &ReviewHandler{Responder: resp, service: service, validate: v}
}

func (h *ReviewHandler) reviewID(r *http.Request) (string, error) {
	id := mux.Vars(r)["id"]
	return id, h.validate.ID("review", id)
}

// Create accepts the product from the body or from /products/{productId}/reviews.
// The author is always the caller.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	subject := validators.Subject{UserID: caller.ID}
	if productID, ok := mux.Vars(r)["productId"]; ok {
		if err := h.validate.ID("product", productID); err != nil {
			h.Error(w, r, err)
			return
		}
		subject.Defaults = map[string]string{"product": productID}
	}

	var in validators.ReviewCreate
	if _, err := h.validate.Bind(r, &in, subject); err != nil {
		h.Error(w, r, err)
		return
	}

	review := in.Model()
	review.UserID = caller.ID
	created, err := h.service.Create(r.Context(), review)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusCreated, created)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	id, err := h.reviewID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	var in validators.ReviewUpdate
	if _, err := h.validate.Bind(r, &in, validators.Subject{ID: id, UserID: caller.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	review, err := h.service.Update(r.Context(), caller, id, in.Changes())
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	id, err := h.reviewID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	if _, err := h.service.Delete(r.Context(), caller, id); err != nil {
		h.Error(w, r, err)
		return
	}
	h.NoContent(w)
}
