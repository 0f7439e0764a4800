package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{"not found", DocumentNotFound("42"), http.StatusNotFound, "fail", "No document found for this id: 42"},
		{"wrapped app error", fmt.Errorf("load cart: %w", Forbidden("You are not allowed")), http.StatusForbidden, "fail", "You are not allowed"},
		{"conflict reported as bad request", Conflict("E-mail already in use"), http.StatusBadRequest, "fail", "E-mail already in use"},
		{"internal app error", Internal("There was an error sending the email. Try again later!"), http.StatusInternalServerError, "error", "There was an error sending the email. Try again later!"},
		{"unknown error hidden", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "error", "Something went wrong"},
		{"nil", nil, http.StatusInternalServerError, "error", "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ErrorResponse(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			env, ok := body.(errorEnvelope)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, env.Status)
			assert.Equal(t, tt.wantStatus, env.Err.StatusCode)
			assert.Equal(t, tt.wantMsg, env.Err.Message)
		})
	}
}

func TestErrorResponse_Validation(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("name", "Category name is required", nil)

	status, body := ErrorResponse(fmt.Errorf("bind: %w", verr))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Same(t, verr, body)
	assert.Equal(t, http.StatusBadRequest, StatusOf(verr))
	assert.Equal(t, "body", verr.Errors[0].Location)
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "home-audio", GenerateSlug("Home Audio"))
	assert.Equal(t, "summer-sale-2024", GenerateSlug("Summer  Sale 2024"))
}
