package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/folem-api/internal/access"
	"github.com/phrazzld/folem-api/internal/domain"
	"github.com/phrazzld/folem-api/internal/service"
	"github.com/phrazzld/folem-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// PIN errors
	case errors.Is(err, access.ErrWrongPIN):
		return http.StatusUnauthorized

	case errors.Is(err, access.ErrPINNotSet):
		return http.StatusConflict

	// Not found errors
	case store.IsNotFoundError(err),
		errors.Is(err, service.ErrFavoriteNotFound),
		errors.Is(err, service.ErrCustomSymbolNotFound):
		return http.StatusNotFound

	// An operation that needs a selected profile
	case errors.Is(err, service.ErrNoActiveProfile):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrImportFormat),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidPIN),
		errors.Is(err, domain.ErrInvalidSymbolKind),
		errors.Is(err, domain.ErrEmptySentence),
		errors.Is(err, domain.ErrEmptyProfileName),
		errors.Is(err, domain.ErrEmptySymbolLabel),
		errors.Is(err, domain.ErrEmptySymbolCategory),
		errors.Is(err, domain.ErrSymbolImageTooLarge),
		errors.Is(err, domain.ErrFontScaleOutOfRange),
		errors.Is(err, domain.ErrInvalidSymbolSize),
		errors.Is(err, domain.ErrInvalidSymbolStyle),
		errors.Is(err, domain.ErrInvalidSpeechRate),
		errors.Is(err, domain.ErrInvalidSpeechPitch),
		errors.Is(err, access.ErrPINIncomplete),
		errors.Is(err, access.ErrPINMismatch):
		return http.StatusBadRequest

	// Deliberate stubs
	case errors.Is(err, store.ErrNotImplemented):
		return http.StatusNotImplemented

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, access.ErrWrongPIN):
		return "Wrong PIN"

	case errors.Is(err, access.ErrPINNotSet):
		return "No PIN has been set"

	case errors.Is(err, access.ErrPINIncomplete):
		return "Enter all four digits"

	case errors.Is(err, access.ErrPINMismatch):
		return "PINs do not match"

	case errors.Is(err, domain.ErrInvalidPIN):
		return "PIN must be exactly 4 digits"

	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, service.ErrFavoriteNotFound):
		return "Favorite sentence not found"

	case errors.Is(err, service.ErrCustomSymbolNotFound):
		return "Custom symbol not found"

	case errors.Is(err, service.ErrNoActiveProfile):
		return "No profile is selected"

	case errors.Is(err, service.ErrImportFormat):
		return "Import file is not a valid profile"

	case errors.Is(err, domain.ErrSymbolImageTooLarge):
		return "Symbol image is too large"

	case errors.Is(err, store.ErrNotImplemented):
		return "Not available yet"

	case MapErrorToStatusCode(err) == http.StatusBadRequest:
		// Validation sentinels carry safe, user-facing text.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}
