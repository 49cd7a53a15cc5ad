package store

import (
	"context"

	"github.com/phrazzld/folem-api/internal/domain"
)

// ProfileStore persists the profile collection and the active-profile
// pointer. Each entry is written as its full current value; there is no
// delta format and no batching, so every logical mutation is one
// complete write.
type ProfileStore interface {
	// GetProfiles returns the persisted profile collection in insertion
	// order. An empty store yields an empty slice, not an error.
	GetProfiles(ctx context.Context) ([]domain.Profile, error)

	// SaveProfiles replaces the persisted profile collection.
	SaveProfiles(ctx context.Context, profiles []domain.Profile) error

	// GetActiveProfileID returns the active profile pointer, or ""
	// when no profile is active.
	GetActiveProfileID(ctx context.Context) (string, error)

	// SaveActiveProfileID replaces the active profile pointer. Pass ""
	// to clear it.
	SaveActiveProfileID(ctx context.Context, id string) error
}

// SettingsStore persists the single app settings record.
type SettingsStore interface {
	// GetAppSettings returns the persisted settings, or the first-run
	// defaults when nothing has been written yet.
	GetAppSettings(ctx context.Context) (domain.AppSettings, error)

	// SaveAppSettings replaces the persisted settings.
	SaveAppSettings(ctx context.Context, settings domain.AppSettings) error
}
