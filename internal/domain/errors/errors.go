// Package errors defines the application-level error taxonomy.
package errors

import (
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return pkgerrors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types
var (
	// Member-related errors
	ErrMemberNotFound = NewBaseError(
		http.StatusNotFound,
		"MEMBER_NOT_FOUND",
		"member not found",
		"",
	)

	ErrEmailAlreadyExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_EXISTS",
		"this email is already registered",
		"",
	)

	ErrNickNameAlreadyExists = NewBaseError(
		http.StatusConflict,
		"NICKNAME_ALREADY_EXISTS",
		"this nickname is already taken",
		"",
	)

	ErrMemberCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"MEMBER_CREATION_FAILED",
		"failed to create member",
		"",
	)

	ErrMemberUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"MEMBER_UPDATE_FAILED",
		"failed to update member",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"email or password is incorrect",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"permission denied",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)
)

// NewDatabaseExecuteError wraps an unexpected database error with context
// while keeping the AppError surface for the delivery layer.
func NewDatabaseExecuteError(err error, message string) error {
	base := NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_EXECUTE_ERROR",
		message,
		err.Error(),
	)

	return pkgerrors.Wrap(base, message)
}
