// Package service provides application-level operations over profiles:
// CRUD, import/export, custom symbols, favorites, visibility, settings
// and learning-progress updates.
package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check these with errors.Is(); the
// presentation layer maps them to user-facing messages.
var (
	// ErrNoActiveProfile indicates an operation that needs an active
	// profile was called while no profile is selected.
	ErrNoActiveProfile = errors.New("no active profile selected")

	// ErrFavoriteNotFound indicates the requested favorite sentence does
	// not exist on the active profile.
	ErrFavoriteNotFound = errors.New("favorite sentence not found")

	// ErrCustomSymbolNotFound indicates the requested custom symbol does
	// not exist on the active profile.
	ErrCustomSymbolNotFound = errors.New("custom symbol not found")

	// ErrImportFormat indicates an import document is missing one of the
	// required fields (id, name, custom symbols).
	ErrImportFormat = errors.New("import document has invalid shape")
)

// ProfileServiceError is a custom error type for profile service errors
// with operation context.
type ProfileServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ProfileServiceError.
func (e *ProfileServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("profile service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("profile service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProfileServiceError) Unwrap() error {
	return e.Err
}

// NewProfileServiceError creates a new ProfileServiceError.
func NewProfileServiceError(operation, message string, err error) *ProfileServiceError {
	return &ProfileServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
