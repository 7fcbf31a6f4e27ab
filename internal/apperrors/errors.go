package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation is not permitted in the resource's current state.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrInsufficientBalance indicates that an account lacks the funds for a requested movement.
// Detected under the row lock, so callers can trust it over any earlier read.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrForbidden indicates that the acting user may not perform the operation.
var ErrForbidden = errors.New("operation not permitted for this actor")

// ErrInternal indicates an unexpected failure whose details must not reach callers.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with a status-code hint and a safe message.
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
