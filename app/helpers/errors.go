package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is an error that carries the HTTP status it should be reported with.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Kind is "fail" for client errors and "error" for server errors.
func (e *AppError) Kind() string {
	if e.Status >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

func NewAppError(status int, format string, args ...any) *AppError {
	return &AppError{Status: status, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *AppError {
	return NewAppError(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *AppError {
	return NewAppError(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *AppError {
	return NewAppError(http.StatusForbidden, format, args...)
}

func NotFound(format string, args ...any) *AppError {
	return NewAppError(http.StatusNotFound, format, args...)
}

func Internal(format string, args ...any) *AppError {
	return NewAppError(http.StatusInternalServerError, format, args...)
}

// Conflict reports a uniqueness violation; the API surfaces these as 400.
func Conflict(format string, args ...any) *AppError {
	return NewAppError(http.StatusBadRequest, format, args...)
}

func DocumentNotFound(id string) *AppError {
	return NotFound("No document found for this id: %s", id)
}

type FieldError struct {
	Msg      string `json:"msg"`
	Path     string `json:"path,omitempty"`
	Location string `json:"location"`
	Value    any    `json:"value,omitempty"`
}

// ValidationError collects every failed rule of a request.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(path, msg string, value any) {
	e.Errors = append(e.Errors, FieldError{Msg: msg, Path: path, Location: "body", Value: value})
}

func (e *ValidationError) Empty() bool {
	return len(e.Errors) == 0
}

// StatusOf maps an error to the HTTP status it is reported with.
func StatusOf(err error) int {
	var appErr *AppError
	var valErr *ValidationError
	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.As(err, &appErr):
		return appErr.Status
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type errorEnvelope struct {
	Status string    `json:"status"`
	Err    errorBody `json:"err"`
}

// ErrorResponse maps err to the status and JSON body it is reported with.
// Errors that are neither validation nor app errors are not echoed.
func ErrorResponse(err error) (int, any) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest, valErr
	}
	appErr := &AppError{Status: http.StatusInternalServerError, Message: "Something went wrong"}
	errors.As(err, &appErr)
	return appErr.Status, errorEnvelope{
		Status: appErr.Kind(),
		Err:    errorBody{StatusCode: appErr.Status, Message: appErr.Message},
	}
}
