package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/unrolled/render"
)

// Authenticator resolves a raw bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*models.User, error)
}

// Protect rejects requests without a valid bearer token and attaches the
// resolved user to the request context.
func Protect(auth Authenticator, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				slog.Debug("Protect: request rejected", "path", r.URL.Path, "error", err)
				status, body := helpers.ErrorResponse(err)
				_ = rnd.JSON(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
