package helpers

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUser      contextKey = "userObject"
	ContextKeyRequestID contextKey = "requestID"
)

const PasswordCost = 12

func GenerateSlug(s string) string {
	return slug.Make(s)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

func PasswordCompare(hashPass string, password []byte) bool {
	if err := bcrypt.CompareHashAndPassword([]byte(hashPass), password); err != nil {
		slog.Debug("PasswordCompare: password does not match", "error", err)
		return false
	}
	return true
}

// GenerateResetCode returns a six hex digit code.
func GenerateResetCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func HashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(ContextKeyUser).(*models.User)
	return user
}
