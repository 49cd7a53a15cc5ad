// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSymbolKind is returned when a serialized symbol carries an
	// unknown kind discriminator.
	ErrInvalidSymbolKind = errors.New("invalid symbol kind")

	// ErrInvalidPIN is returned when a PIN is not exactly four numeric digits.
	ErrInvalidPIN = errors.New("PIN must be exactly 4 digits")
)
