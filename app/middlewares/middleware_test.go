package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/utils/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	users map[string]*models.User
	got   string
}

func (s *stubAuth) Authenticate(_ context.Context, raw string) (*models.User, error) {
	s.got = raw
	if raw == "" {
		return nil, helpers.Unauthorized("Not authenticated, Login first")
	}
	user, ok := s.users[raw]
	if !ok {
		return nil, helpers.Unauthorized("Not authenticated, Invalid or expired token")
	}
	return user, nil
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := helpers.UserFromContext(r.Context())
		if user != nil {
			w.Header().Set("X-User", user.ID)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

type envelope struct {
	Status string `json:"status"`
	Err    struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	} `json:"err"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestProtect(t *testing.T) {
	rnd := renderer.New(false)
	auth := &stubAuth{users: map[string]*models.User{"good": {ID: "u1", Role: models.RoleUser}}}
	h := Protect(auth, rnd)(okHandler(t))

	tests := []struct {
		name   string
		header string
		status int
		msg    string
	}{
		{"missing header", "", http.StatusUnauthorized, "Not authenticated, Login first"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Not authenticated, Login first"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "Not authenticated, Invalid or expired token"},
		{"valid token", "Bearer good", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.msg != "" {
				env := decodeEnvelope(t, rec)
				assert.Equal(t, "fail", env.Status)
				assert.Equal(t, tt.msg, env.Err.Message)
				return
			}
			assert.Equal(t, "u1", rec.Header().Get("X-User"))
		})
	}
}

func TestPolicyAllowed(t *testing.T) {
	p := DefaultPolicy

	assert.False(t, p.Allowed(Categories, Delete, models.RoleUser))
	assert.False(t, p.Allowed(Categories, Delete, models.RoleManager))
	assert.True(t, p.Allowed(Categories, Delete, models.RoleAdmin))
	assert.True(t, p.Allowed(Products, Update, models.RoleManager))
	assert.False(t, p.Allowed(Cart, Read, models.RoleAdmin))
	assert.True(t, p.Allowed(Reviews, Delete, models.RoleManager))
	assert.False(t, p.Allowed(Reviews, Update, models.RoleAdmin))
	assert.True(t, p.Allowed(Orders, Read, models.RoleUser))
	assert.False(t, p.Allowed(Orders, Pay, models.RoleUser))
	assert.True(t, p.Allowed(Categories, Read, models.RoleUser))
}

func TestRequire(t *testing.T) {
	rnd := renderer.New(false)
	h := DefaultPolicy.Require(Categories, Delete, rnd)(okHandler(t))

	serve := func(user *models.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/x", nil)
		if user != nil {
			req = req.WithContext(helpers.WithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := serve(&models.User{ID: "u1", Role: models.RoleUser})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized", decodeEnvelope(t, rec).Err.Message)

	rec = serve(nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(&models.User{ID: "a1", Role: models.RoleAdmin})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecoverer(t *testing.T) {
	rnd := renderer.New(false)
	h := Recoverer(rnd)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Something went wrong", env.Err.Message)
}

func TestRequestLogger(t *testing.T) {
	var seen string
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(helpers.ContextKeyRequestID).(string)
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
}
