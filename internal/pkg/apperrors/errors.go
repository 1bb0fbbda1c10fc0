package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrCodeMismatch       = errors.New("wrong code")
	ErrUnauthorized       = errors.New("authentication required")
	ErrAccountBanned      = errors.New("account is banned")
	ErrAccountNotVerified = errors.New("account is not verified")
	ErrAlreadyVerified    = errors.New("account is already active")

	// Authorization errors
	ErrForbidden = errors.New("permission denied")

	// External collaborator errors
	ErrEmailDelivery = errors.New("email delivery failed")
)

// User errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrSuperAdminImmutable = errors.New("superAdmin account cannot be modified")
)

// Roster errors
var (
	ErrCommitteeNotFound  = errors.New("committee not found")
	ErrMemberNotFound     = errors.New("member assignment not found")
	ErrMemberAlreadyAdded = errors.New("member already added to committee")
)

// NewNotFoundError creates a new custom error for a missing record with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for duplicate natural keys with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for missing or malformed input
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidation,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// CustomError carries an error kind plus a caller-facing message
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error kind
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
