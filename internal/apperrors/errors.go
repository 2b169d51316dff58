package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrCurrencyMismatch indicates that the currencies of the entities involved
// in an operation disagree. Amounts are never converted implicitly.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrAlreadySettled indicates that an accept-payment target is already fully paid.
var ErrAlreadySettled = errors.New("accrual already settled")

// ErrAlreadyCancelled indicates an attempt to cancel a payment twice.
var ErrAlreadyCancelled = errors.New("payment already cancelled")

// ErrConflict indicates that a concurrent writer modified the same row.
// The operation was rolled back and can be retried by the caller.
var ErrConflict = errors.New("concurrent modification")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure the caller cannot correct.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and cause.
// Repositories use it to report infrastructure failures without leaking
// driver details to handlers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
