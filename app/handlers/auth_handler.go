package handlers

import (
	"net/http"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/validators"
)

type AuthHandler struct {
	Responder
	service  *services.AuthService
	validate *validators.Validator
}

func NewAuthHandler(resp Responder, service *services.AuthService, v *validators.Validator) *AuthHandler {
	return &AuthHandler{Responder: resp, service: service, validate: v}
}

type tokenResponse struct {
	Data   *models.User `json:"data"`
	Token  string       `json:"token"`
	UserID string       `json:"userId,omitempty"`
}

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in validators.Signup
	if _, err := h.validate.Bind(r, &in, validators.Subject{}); err != nil {
		h.Error(w, r, err)
		return
	}

	name, email, phone, password := in.Params()
	user, tok, err := h.service.Signup(r.Context(), services.SignupParams{Name: name, Email: email, Phone: phone, Password: password})
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.expand(user)
	h.JSON(w, http.StatusCreated, tokenResponse{Data: user, Token: tok})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in validators.Login
	if _, err := h.validate.Bind(r, &in, validators.Subject{}); err != nil {
		h.Error(w, r, err)
		return
	}

	email, password := in.Credentials()
	user, tok, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.expand(user)
	h.JSON(w, http.StatusOK, tokenResponse{Data: user, Token: tok, UserID: user.ID})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in validators.ForgotPassword
	if _, err := h.validate.Bind(r, &in, validators.Subject{}); err != nil {
		h.Error(w, r, err)
		return
	}
	if err := h.service.ForgotPassword(r.Context(), in.Address()); err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, messageResponse{Status: "Success", Message: "Check your email for instructions on resetting your password"})
}

func (h *AuthHandler) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var in validators.VerifyResetCode
	if _, err := h.validate.Bind(r, &in, validators.Subject{}); err != nil {
		h.Error(w, r, err)
		return
	}
	if err := h.service.VerifyResetCode(r.Context(), in.Code()); err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, messageResponse{Status: "Success", Message: "Success!, Now you can reset your password"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in validators.ResetPassword
	if _, err := h.validate.Bind(r, &in, validators.Subject{}); err != nil {
		h.Error(w, r, err)
		return
	}

	email, password := in.Params()
	tok, err := h.service.ResetPassword(r.Context(), email, password)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, messageResponse{Status: "Success", Message: "Password updated sucessfully", Token: tok})
}
