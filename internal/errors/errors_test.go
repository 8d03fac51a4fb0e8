package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		expected string
	}{
		{
			name: "with entity type",
			err: &NotFoundError{
				Network:    "main",
				EntityType: "block",
				Identifier: "000000000000000001f4ea2d3a4d8a8d4e1d2f9b7a5e3c8d0f1a2b3c4d5e6f70",
			},
			expected: "block not found on main network: 000000000000000001f4ea2d3a4d8a8d4e1d2f9b7a5e3c8d0f1a2b3c4d5e6f70",
		},
		{
			name: "without entity type",
			err: &NotFoundError{
				Network:    "test",
				Identifier: "mzBc4XEFSdzCDcTxAgf6EZXgsZWpztRhef",
			},
			expected: "not found on test network: mzBc4XEFSdzCDcTxAgf6EZXgsZWpztRhef",
		},
		{
			name: "block height",
			err: &NotFoundError{
				Network:    "stn",
				EntityType: "block",
				Identifier: "99999999",
			},
			expected: "block not found on stn network: 99999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("NotFoundError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("main", "transaction", "abc")

	if err.Network != "main" {
		t.Errorf("Network = %q, want %q", err.Network, "main")
	}
	if err.EntityType != "transaction" {
		t.Errorf("EntityType = %q, want %q", err.EntityType, "transaction")
	}
	if err.Identifier != "abc" {
		t.Errorf("Identifier = %q, want %q", err.Identifier, "abc")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "with field and value",
			err: &ValidationError{
				Field:   "height",
				Value:   "-1",
				Message: "must not be negative",
			},
			expected: "validation failed for height=\"-1\": must not be negative",
		},
		{
			name: "with field only",
			err: &ValidationError{
				Field:   "txhex",
				Message: "is required",
			},
			expected: "validation failed for txhex: is required",
		},
		{
			name: "message only",
			err: &ValidationError{
				Message: "invalid input",
			},
			expected: "validation failed: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("address", "xyz", "not a valid address")

	if err.Field != "address" {
		t.Errorf("Field = %q, want %q", err.Field, "address")
	}
	if err.Value != "xyz" {
		t.Errorf("Value = %q, want %q", err.Value, "xyz")
	}
	if err.Message != "not a valid address" {
		t.Errorf("Message = %q, want %q", err.Message, "not a valid address")
	}
}

func TestIsNotFound(t *testing.T) {
	notFoundErr := &NotFoundError{Network: "main", Identifier: "123"}
	validationErr := &ValidationError{Message: "test"}
	plainErr := errors.New("plain error")

	if !IsNotFound(notFoundErr) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
	if !IsNotFound(fmt.Errorf("lookup: %w", notFoundErr)) {
		t.Error("IsNotFound should return true for wrapped NotFoundError")
	}
	if IsNotFound(validationErr) {
		t.Error("IsNotFound should return false for ValidationError")
	}
	if IsNotFound(plainErr) {
		t.Error("IsNotFound should return false for plain error")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound should return false for nil")
	}
}

func TestIsValidation(t *testing.T) {
	notFoundErr := &NotFoundError{Network: "main", Identifier: "123"}
	validationErr := &ValidationError{Message: "test"}
	plainErr := errors.New("plain error")

	if IsValidation(notFoundErr) {
		t.Error("IsValidation should return false for NotFoundError")
	}
	if !IsValidation(validationErr) {
		t.Error("IsValidation should return true for ValidationError")
	}
	if !IsValidation(fmt.Errorf("args: %w", validationErr)) {
		t.Error("IsValidation should return true for wrapped ValidationError")
	}
	if IsValidation(plainErr) {
		t.Error("IsValidation should return false for plain error")
	}
	if IsValidation(nil) {
		t.Error("IsValidation should return false for nil")
	}
}
