package handlers

import (
	"net/http"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/validators"
	"github.com/gorilla/mux"
)

type AddressHandler struct {
	Responder
	service  *services.UserService
	validate *validators.Validator
}

func NewAddressHandler(resp Responder, service *services.UserService, v *validators.Validator) *AddressHandler {
	return &AddressHandler{Responder: resp, service: service, validate: v}
}

func (h *AddressHandler) addressID(r *http.Request) (string, error) {
	id := mux.Vars(r)["addressId"]
	return id, h.validate.ID("address", id)
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	addresses, err := h.service.Addresses(r.Context(), caller.ID)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	n := len(addresses)
	h.JSON(w, http.StatusOK, listResponse[models.Address]{Status: "success", Results: &n, Data: addresses})
}

func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	id, err := h.addressID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	address, err := h.service.Address(r.Context(), caller.ID, id)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusOK, address)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	var in validators.AddressCreate
	if _, err := h.validate.Bind(r, &in, validators.Subject{UserID: caller.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	address := in.Model()
	address.UserID = caller.ID
	addresses, err := h.service.AddAddress(r.Context(), address)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, listResponse[models.Address]{Status: "success", Message: "Address added successfully.", Data: addresses})
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	id, err := h.addressID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	var in validators.AddressUpdate
	if _, err := h.validate.Bind(r, &in, validators.Subject{ID: id, UserID: caller.ID}); err != nil {
		h.Error(w, r, err)
		return
	}

	address, err := h.service.UpdateAddress(r.Context(), caller.ID, id, in.Changes())
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusOK, address)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := helpers.UserFromContext(r.Context())
	id, err := h.addressID(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	addresses, err := h.service.RemoveAddress(r.Context(), caller.ID, id)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, listResponse[models.Address]{Status: "success", Message: "Address removed successfully.", Data: addresses})
}
