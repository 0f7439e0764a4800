package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/unrolled/render"
)

// Responder writes JSON bodies. Image filenames of documents are rewritten
// to public URLs on the way out.
type Responder struct {
	render  *render.Render
	baseURL string
}

func NewResponder(rnd *render.Render, baseURL string) Responder {
	return Responder{render: rnd, baseURL: baseURL}
}

func (h Responder) JSON(w http.ResponseWriter, status int, v any) {
	if err := h.render.JSON(w, status, v); err != nil {
		slog.Error("Responder: failed to write response", "error", err)
	}
}

// Data writes {"data": doc}.
func (h Responder) Data(w http.ResponseWriter, status int, doc any) {
	h.expand(doc)
	h.JSON(w, status, map[string]any{"data": doc})
}

func (h Responder) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (h Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, body := helpers.ErrorResponse(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Responder: request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	h.JSON(w, status, body)
}

func (h Responder) expand(doc any) {
	if e, ok := doc.(models.URLExpander); ok && e != nil {
		e.ExpandImageURLs(h.baseURL)
	}
}

// expandAll rewrites image URLs of every element of docs.
func expandAll[T any](h Responder, docs []T) {
	for i := range docs {
		h.expand(&docs[i])
	}
}
