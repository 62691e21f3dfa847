package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so that
// errors.Is(NewDomainError("NOT_FOUND", "..."), ErrNotFound) holds.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError("NOT_FOUND", resource+" not found")
}

// NewValidationError creates a VALIDATION_ERROR error
func NewValidationError(message string) *DomainError {
	return NewDomainError("VALIDATION_ERROR", message)
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrFeatureOff    = NewDomainError("FEATURE_DISABLED", "This feature is currently disabled")
)
