package classify

import "errors"

// Common errors returned by classifier implementations
var (
	// ErrClassificationFailed is returned when a classification call fails
	// for any general reason.
	ErrClassificationFailed = errors.New("classification call failed")

	// ErrRateLimited is returned when the classification service reports
	// that the caller has exceeded its request quota. The pipeline's retry
	// wrapper treats this as retryable; everything else propagates.
	ErrRateLimited = errors.New("classification service rate limited")

	// ErrInvalidResponse is returned when the service response cannot be
	// parsed into the expected shape.
	ErrInvalidResponse = errors.New("invalid response from classification service")

	// ErrInvalidConfig is returned when the classifier configuration is
	// invalid (missing API key, model name, and so on).
	ErrInvalidConfig = errors.New("invalid classifier configuration")
)
