// Package apperr defines the error kinds reported by the hotel engine and
// their mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid transition")
)

// NotFoundf reports that a referenced guest, room or reservation is absent.
func NotFoundf(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// Conflictf reports an unavailable room or a uniqueness violation.
func Conflictf(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

// Validationf reports input that breaks a domain rule.
func Validationf(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

// InvalidTransitionf reports a lifecycle step attempted from the wrong status.
func InvalidTransitionf(format string, args ...any) error {
	return wrap(ErrInvalidTransition, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
