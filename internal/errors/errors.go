// Package errors provides shared error types for tool and CLI input handling.
package errors

import (
	stderrors "errors"
	"fmt"
)

// NotFoundError indicates the service has no record for an identifier.
type NotFoundError struct {
	Network    string // "main", "test", "stn"
	EntityType string // "block", "transaction", "address", "script"
	Identifier string // hash, height, address or script hash
}

func (e *NotFoundError) Error() string {
	if e.EntityType != "" {
		return fmt.Sprintf("%s not found on %s network: %s", e.EntityType, e.Network, e.Identifier)
	}
	return fmt.Sprintf("not found on %s network: %s", e.Network, e.Identifier)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(network, entityType, identifier string) *NotFoundError {
	return &NotFoundError{
		Network:    network,
		EntityType: entityType,
		Identifier: identifier,
	}
}

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (may be empty for long or sensitive data)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}
