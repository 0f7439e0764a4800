package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"github.com/Rakhulsr/storefront-api/app/utils/token"
	"gorm.io/gorm"
)

const ResetCodeTTL = 15 * time.Minute

type SignupParams struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type AuthService struct {
	users  repositories.UserRepository
	tokens *token.Manager
	mailer Mailer
	now    func() time.Time
}

func NewAuthService(users repositories.UserRepository, tokens *token.Manager, mailer Mailer) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer, now: time.Now}
}

func (s *AuthService) Signup(ctx context.Context, p SignupParams) (*models.User, string, error) {
	hashed, err := helpers.HashPassword(p.Password)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{
		Name:     p.Name,
		Slug:     helpers.GenerateSlug(p.Name),
		Email:    p.Email,
		Phone:    p.Phone,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", helpers.Conflict("E-mail already in use")
		}
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	slog.Info("Signup: user registered", "user_id", user.ID)
	return user, tok, nil
}

// Login checks the credentials. Signing in to a deactivated account
// reactivates it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		return nil, "", helpers.Unauthorized("Invalid email or password")
	}

	if !user.Active {
		user, err = s.users.UpdateFields(ctx, user.ID, map[string]any{"active": true})
		if err != nil {
			return nil, "", err
		}
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Authenticate resolves a bearer token to its still existing user.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	if raw == "" {
		return nil, helpers.Unauthorized("Not authenticated, Login first")
	}
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, helpers.Unauthorized("Not authenticated, Invalid or expired token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, helpers.Unauthorized("The user that belong to this token does no longer exist")
	}
	if user.ChangedPasswordAfter(claims.IssuedAt.Time) {
		return nil, helpers.Unauthorized("User recently changed his password. please login again..")
	}
	return user, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return s.tokens.Issue(user.ID, user.Email)
}

// ForgotPassword stores a hashed one-time code and mails the plain code.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return helpers.NotFound("There is no user with that email %s", email)
	}

	code, err := helpers.GenerateResetCode()
	if err != nil {
		return err
	}
	_, err = s.users.UpdateFields(ctx, user.ID, map[string]any{
		"password_reset_code":     helpers.HashResetCode(code),
		"password_reset_expires":  s.now().Add(ResetCodeTTL),
		"password_reset_verified": false,
	})
	if err != nil {
		return err
	}

	body := BuildResetCodeEmail(user.Name, code, int(ResetCodeTTL/time.Minute))
	if err := s.mailer.Send(user.Email, "Your password reset code (valid for 15 min)", body); err != nil {
		if _, clearErr := s.users.UpdateFields(ctx, user.ID, clearedReset()); clearErr != nil {
			slog.Error("ForgotPassword: failed to clear reset code", "user_id", user.ID, "error", clearErr)
		}
		return helpers.Internal("Error sending the email..")
	}
	return nil
}

func (s *AuthService) VerifyResetCode(ctx context.Context, code string) error {
	user, err := s.users.FindByResetCode(ctx, helpers.HashResetCode(code), s.now())
	if err != nil {
		return err
	}
	if user == nil {
		return helpers.BadRequest("Reset code invalid or expired")
	}
	_, err = s.users.UpdateFields(ctx, user.ID, map[string]any{"password_reset_verified": true})
	return err
}

// ResetPassword sets a new password once the reset code has been verified
// and returns a fresh token.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", helpers.NotFound("There is no user with email %s", email)
	}
	if user.PasswordResetVerified == nil || !*user.PasswordResetVerified {
		return "", helpers.BadRequest("Reset code not verified")
	}

	hashed, err := helpers.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	changes := clearedReset()
	changes["password"] = hashed
	changes["password_changed_at"] = s.now()
	if _, err := s.users.UpdateFields(ctx, user.ID, changes); err != nil {
		return "", err
	}
	return s.tokens.Issue(user.ID, user.Email)
}

func clearedReset() map[string]any {
	return map[string]any{
		"password_reset_code":     nil,
		"password_reset_expires":  nil,
		"password_reset_verified": nil,
	}
}
