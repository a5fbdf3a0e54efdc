package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeUnavailable  ErrorType = "unavailable"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on type and message so that errors.Is(err, ErrDuplicateRole)
// holds for copies carrying extra details.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithDetail returns a copy of the error with the detail added.
// The package-level sentinels are never mutated.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{
		Type:    e.Type,
		Message: e.Message,
		Err:     e.Err,
		Details: details,
	}
}

// Notice returns the message shown to the user
func (e *DomainError) Notice() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

var (
	// Authentication
	ErrInvalidCredentials = NewDomainError(ErrorTypeUnauthorized, "Invalid email or password", nil)
	ErrSessionCheck       = NewDomainError(ErrorTypeInternal, "session check failed", nil)

	// Role permissions
	ErrEmptyRoleName   = NewDomainError(ErrorTypeValidation, "Please enter a role name", nil)
	ErrDuplicateRole   = NewDomainError(ErrorTypeConflict, "Role already exists", nil)
	ErrProtectedRole   = NewDomainError(ErrorTypeForbidden, "Cannot delete default roles", nil)
	ErrRoleNotFound    = NewDomainError(ErrorTypeNotFound, "Role not found", nil)
	ErrUnknownReport   = NewDomainError(ErrorTypeValidation, "Unknown report", nil)
	ErrMappingNotFound = NewDomainError(ErrorTypeNotFound, "No saved permissions", nil)
	ErrPermissionsSave = NewDomainError(ErrorTypeInternal, "Failed to save permissions", nil)

	// Users
	ErrInvalidUser = NewDomainError(ErrorTypeValidation, "Invalid user", nil)

	// Password change
	ErrPasswordMismatch    = NewDomainError(ErrorTypeValidation, "Old password is incorrect", nil)
	ErrPasswordConfirm     = NewDomainError(ErrorTypeValidation, "Passwords do not match", nil)
	ErrPasswordUnavailable = NewDomainError(ErrorTypeUnavailable, "Password service unavailable", nil)

	// Generic
	ErrInvalidInput  = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrStorageFailed = NewDomainError(ErrorTypeInternal, "storage operation failed", nil)
)

func hasType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return hasType(err, ErrorTypeUnauthorized)
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return hasType(err, ErrorTypeForbidden)
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	return hasType(err, ErrorTypeConflict)
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return hasType(err, ErrorTypeInternal)
}

// IsUnavailableError checks if an error is an unavailable collaborator error
func IsUnavailableError(err error) bool {
	return hasType(err, ErrorTypeUnavailable)
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// GetNotice returns the user-visible message for err
func GetNotice(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "An unexpected error occurred"
}

// WrapError wraps an error with the sentinel's type and message
func WrapError(sentinel *DomainError, err error) error {
	return &DomainError{
		Type:    sentinel.Type,
		Message: sentinel.Message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
