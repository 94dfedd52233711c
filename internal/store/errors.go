package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. This is the generic version of the entity-specific not
	// found errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity. Association and label inserts swallow this
	// internally; it only surfaces from operations where a duplicate is a
	// real conflict.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or when an insert violates referential integrity.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrLabelNotFound indicates that the requested label does not exist.
	// Merge returns this when the source label was already consumed by an
	// earlier merge.
	ErrLabelNotFound = fmt.Errorf("%w: label", ErrNotFound)

	// ErrItemNotFound indicates that the requested item does not exist.
	ErrItemNotFound = fmt.Errorf("%w: item", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is a "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
