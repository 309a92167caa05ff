// Package errors defines the application error model: every failure the
// core exposes to callers is an AppError carrying an HTTP status, a stable
// business code and a user-facing message.
package errors

import (
	"net/http"

	"souq/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// Is matches by business code, so a detail-carrying copy still compares
// equal to its predefined error under errors.Is.
func (e *BaseError) Is(target error) bool {
	var other *BaseError
	if errors.As(target, &other) {
		return e.errorCode == other.errorCode
	}

	return false
}

// WithDetails returns a copy of the error with detailed information attached.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Not-found errors (referenced entity absent)
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No such user",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"No such product",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"No such category",
		"",
	)

	ErrReviewNotFound = NewBaseError(
		http.StatusNotFound,
		"REVIEW_NOT_FOUND",
		"No such review",
		"",
	)

	// InvalidReference: the operation would create or depend on a dangling
	// foreign id.
	ErrInvalidReference = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_REFERENCE",
		"Operation references a missing entity",
		"",
	)

	// Forbidden: capability check failed.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You are not allowed to access this route",
		"",
	)

	// Conflict errors
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"This email is already registered",
		"",
	)

	ErrCategoryExists = NewBaseError(
		http.StatusConflict,
		"CATEGORY_EXISTS",
		"A category with this name already exists",
		"",
	)

	ErrAlreadyWishlisted = NewBaseError(
		http.StatusConflict,
		"ALREADY_WISHLISTED",
		"Product is already wishlisted",
		"",
	)

	ErrCategoryNotEmpty = NewBaseError(
		http.StatusConflict,
		"CATEGORY_NOT_EMPTY",
		"Category still contains products",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrInvalidRating = NewBaseError(
		http.StatusBadRequest,
		"RATING_OUT_OF_RANGE",
		"Rating must be between 0 and 5",
		"",
	)

	ErrPasswordViaUpdate = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_VIA_UPDATE",
		"Password cannot be changed via this route",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email or password is incorrect",
		"",
	)

	ErrResetTokenInvalid = NewBaseError(
		http.StatusBadRequest,
		"RESET_TOKEN_INVALID",
		"Password reset token is invalid or has expired",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)
