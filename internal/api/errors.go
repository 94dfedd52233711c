package api

import (
	"errors"
	"net/http"

	"github.com/missivelabs/missive/internal/service"
	"github.com/missivelabs/missive/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrLabelNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrSelfMerge),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrLabelNotFound):
		return "Label not found"

	case errors.Is(err, service.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, service.ErrSelfMerge):
		return "Cannot merge a label into itself"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"

	default:
		return "An unexpected error occurred"
	}
}
