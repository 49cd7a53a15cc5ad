// Package api implements the loopback HTTP interface the board UI
// talks to: profile management, board content, learning progress,
// parent-mode access control, voice selection and profile sharing.
//
// Handlers decode and validate request DTOs, call the corresponding
// service and translate errors through MapErrorToStatusCode and
// GetSafeErrorMessage so internal details never reach the client.
package api
