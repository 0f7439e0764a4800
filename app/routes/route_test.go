package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rakhulsr/storefront-api/app/configs"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/shop?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	cfg := configs.ENV{AppEnv: "test", BaseURL: "http://api.test"}
	cfg.JWT.Secret = "route-test-secret"
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxBytes = 1 << 20
	return NewRouter(db, cfg, Dependencies{}), cfg.Upload.Dir
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Err struct {
			Message string `json:"message"`
		} `json:"err"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Err.Message
}

func TestRouter_GuardedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodDelete, "/api/v1/products/4f7c1a43-6a7a-4c43-9c1e-6f1c2d3b4a5e"},
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPut, "/api/v1/cart/applyCoupon"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodPut, "/api/v1/orders/4f7c1a43-6a7a-4c43-9c1e-6f1c2d3b4a5e/pay"},
		{http.MethodGet, "/api/v1/coupons"},
		{http.MethodGet, "/api/v1/users/getMe"},
		{http.MethodGet, "/api/v1/wishlist"},
		{http.MethodGet, "/api/v1/addresses"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Not authenticated, Login first", errorMessage(t, rec))
		})
	}
}

func TestRouter_RejectsInvalidToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated, Invalid or expired token", errorMessage(t, rec))
}

func TestRouter_UnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nothing-here", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Can't find this route: /api/v1/nothing-here", errorMessage(t, rec))
}

func TestRouter_PublicReadValidatesID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands/123", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Errors []struct {
			Msg      string `json:"msg"`
			Location string `json:"location"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "Invalid brand id format", body.Errors[0].Msg)
	assert.Equal(t, "params", body.Errors[0].Location)
}

func TestRouter_ServesUploads(t *testing.T) {
	router, root := newTestRouter(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "brands"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "brands", "brand-1.jpeg"), []byte("jpeg"), 0o644))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brands/brand-1.jpeg", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg", rec.Body.String())
}
