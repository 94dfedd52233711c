package service

import (
	"errors"
	"fmt"

	"github.com/missivelabs/missive/internal/store"
)

// Common sentinel errors for the service layer.
var (
	// ErrLabelNotFound indicates that the label does not exist. Merge
	// returns it when the source label was already consumed.
	ErrLabelNotFound = errors.New("label not found")

	// ErrItemNotFound indicates that the item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrSelfMerge indicates a merge where source and target are the
	// same label.
	ErrSelfMerge = errors.New("cannot merge a label into itself")
)

// LabelServiceError wraps errors from the label service with context.
type LabelServiceError struct {
	// Operation is the operation that failed (e.g., "set_item_labels").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for LabelServiceError.
func (e *LabelServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("label service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("label service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LabelServiceError) Unwrap() error {
	return e.Err
}

// NewLabelServiceError creates a new LabelServiceError. Store-level
// sentinels are mapped to their service-level counterparts and returned
// directly without wrapping.
func NewLabelServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrLabelNotFound) || errors.Is(err, store.ErrLabelNotFound) {
		return ErrLabelNotFound
	}
	if errors.Is(err, ErrItemNotFound) || errors.Is(err, store.ErrItemNotFound) {
		return ErrItemNotFound
	}

	return &LabelServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
