package tripsearch

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrorCode represents specific error codes for search operations.
type ErrorCode int

const (
	// ErrCodeInvalidOption is returned when an invalid option is provided.
	ErrCodeInvalidOption ErrorCode = iota + 1000

	// ErrCodeInvalidExpression is returned when an invalid expression is provided.
	ErrCodeInvalidExpression

	// ErrCodeTimeout is returned when a search operation times out.
	ErrCodeTimeout

	// ErrCodeCanceled is returned when a search operation is canceled.
	ErrCodeCanceled

	// ErrCodeBackendUnavailable is returned when the search backend is unavailable.
	ErrCodeBackendUnavailable

	// ErrCodeDuplicateID is returned when a catalog repeats an item ID.
	ErrCodeDuplicateID

	// ErrCodeInvalidCatalog is returned when a catalog file cannot be used.
	ErrCodeInvalidCatalog
)

// String returns the human-readable string representation of the error code.
// This implements the fmt.Stringer interface.
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeInvalidOption:
		return "invalid option"
	case ErrCodeInvalidExpression:
		return "invalid expression"
	case ErrCodeTimeout:
		return "operation timed out"
	case ErrCodeCanceled:
		return "operation canceled"
	case ErrCodeBackendUnavailable:
		return "backend unavailable"
	case ErrCodeDuplicateID:
		return "duplicate id"
	case ErrCodeInvalidCatalog:
		return "invalid catalog"
	default:
		return "unknown error"
	}
}

// newErrorWithCode creates a new error with a code and message.
func newErrorWithCode(code ErrorCode, msg string) error {
	err := errors.New(msg)
	return errors.WithSecondaryError(err, errors.Newf("code: %d", int(code)))
}

// Common errors that can be returned by search operations.
var (
	// ErrInvalidOption is returned when an invalid option is provided.
	ErrInvalidOption = newErrorWithCode(ErrCodeInvalidOption, "tripsearch: invalid option")

	// ErrInvalidExpression is returned when an invalid expression is provided.
	ErrInvalidExpression = newErrorWithCode(ErrCodeInvalidExpression, "tripsearch: invalid expression")

	// ErrTimeout is returned when a search operation times out.
	ErrTimeout = newErrorWithCode(ErrCodeTimeout, "tripsearch: operation timed out")

	// ErrCanceled is returned when a search operation is canceled.
	ErrCanceled = newErrorWithCode(ErrCodeCanceled, "tripsearch: operation canceled")

	// ErrBackendUnavailable is returned when the search backend is unavailable.
	ErrBackendUnavailable = newErrorWithCode(ErrCodeBackendUnavailable, "tripsearch: backend unavailable")

	// ErrDuplicateID is returned when two catalog items share an ID.
	ErrDuplicateID = newErrorWithCode(ErrCodeDuplicateID, "tripsearch: duplicate id")

	// ErrInvalidCatalog is returned when a catalog is malformed.
	ErrInvalidCatalog = newErrorWithCode(ErrCodeInvalidCatalog, "tripsearch: invalid catalog")
)

// ContextError maps a context error onto ErrTimeout or ErrCanceled.
// Any other error is returned unchanged.
func ContextError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return ErrCanceled
	default:
		return err
	}
}
