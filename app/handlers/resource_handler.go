package handlers

import (
	"net/http"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/utils/listquery"
	"github.com/Rakhulsr/storefront-api/app/utils/uploads"
	"github.com/Rakhulsr/storefront-api/app/validators"
	"github.com/gorilla/mux"
)

// Parent scopes a resource under a path parameter, e.g. the subcategories of
// /categories/{categoryId}/subcategories.
type Parent struct {
	Param  string
	Label  string
	Column string
	Field  string
}

type ResourceConfig[T any] struct {
	Label     string
	Schema    listquery.Schema
	NewCreate func() validators.Creator[T]
	NewUpdate func() validators.Updater
	Parent    *Parent
}

// ResourceHandler serves the create, list, get, update and delete endpoints
// of one document type.
type ResourceHandler[T any] struct {
	Responder
	service  *services.ResourceService[T]
	validate *validators.Validator
	uploads  *uploads.Store
	config   ResourceConfig[T]
}

func NewResourceHandler[T any](resp Responder, service *services.ResourceService[T], v *validators.Validator, up *uploads.Store, config ResourceConfig[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{Responder: resp, service: service, validate: v, uploads: up, config: config}
}

// parent returns the parent id from the path, empty when the route is not
// nested.
func (h *ResourceHandler[T]) parent(r *http.Request) (string, error) {
	p := h.config.Parent
	if p == nil {
		return "", nil
	}
	id, ok := mux.Vars(r)[p.Param]
	if !ok {
		return "", nil
	}
	if err := h.validate.ID(p.Label, id); err != nil {
		return "", err
	}
	return id, nil
}

func (h *ResourceHandler[T]) id(r *http.Request) (string, error) {
	id := mux.Vars(r)["id"]
	if err := h.validate.ID(h.config.Label, id); err != nil {
		return "", err
	}
	return id, nil
}

func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	parentID, err := h.parent(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	subject := validators.Subject{}
	if user := helpers.UserFromContext(r.Context()); user != nil {
		subject.UserID = user.ID
	}
	if parentID != "" {
		subject.Defaults = map[string]string{h.config.Parent.Field: parentID}
	}

	in := h.config.NewCreate()
	uploaded, err := h.validate.Bind(r, in, subject)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	doc, err := h.service.Create(r.Context(), in.Model())
	if err != nil {
		h.uploads.Remove(uploaded)
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusCreated, doc)
}

func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	parentID, err := h.parent(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	var base repositories.Scope
	if parentID != "" {
		base = repositories.WhereEq(h.config.Parent.Column, parentID)
	}

	q := listquery.Parse(r.URL.Query(), h.config.Schema)
	page, err := h.service.List(r.Context(), base, q)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	expandAll(h.Responder, page.Data)
	h.JSON(w, http.StatusOK, page)
}

func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.id(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	doc, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusOK, doc)
}

func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.id(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	subject := validators.Subject{ID: id}
	if user := helpers.UserFromContext(r.Context()); user != nil {
		subject.UserID = user.ID
	}

	in := h.config.NewUpdate()
	uploaded, err := h.validate.Bind(r, in, subject)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	outcome, err := h.service.Update(r.Context(), id, in.Changes(), uploaded)
	h.uploads.Remove(outcome.Discard)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.Data(w, http.StatusOK, outcome.Doc)
}

func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.id(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	outcome, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.uploads.Remove(outcome.Discard)
	h.NoContent(w)
}
