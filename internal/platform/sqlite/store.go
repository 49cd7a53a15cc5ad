// Package sqlite implements the store interfaces on a local SQLite
// database used as a key-value store. Each logical key holds the full
// JSON value of one persisted entry; writes replace the whole value,
// matching the last-write-wins contract of the core.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/phrazzld/folem-api/internal/domain"
	"github.com/phrazzld/folem-api/internal/store"

	_ "modernc.org/sqlite" // SQLite driver.
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Logical keys for the persisted state. Each key maps to one complete
// JSON document.
const (
	keyProfiles        = "profiles"
	keyActiveProfileID = "active_profile_id"
	keyAppSettings     = "app_settings"
)

// KV is a SQLite-backed key-value store implementing both
// store.ProfileStore and store.SettingsStore.
type KV struct {
	db *sql.DB
}

// Interface guards.
var (
	_ store.ProfileStore  = (*KV)(nil)
	_ store.SettingsStore = (*KV)(nil)
)

// Open opens or creates the database at path and applies the embedded
// migrations.
func Open(path string) (*KV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &KV{db: db}, nil
}

// migrate applies the embedded goose migrations.
func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *KV) Close() error {
	return s.db.Close()
}

// get reads the raw value for key. The second return is false when the
// key has never been written.
func (s *KV) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, store.NewStoreError(key, "load", "querying value", err)
	}
	return value, true, nil
}

// set replaces the value for key.
func (s *KV) set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return store.NewStoreError(key, "save", "writing value", fmt.Errorf("%w: %v", store.ErrWriteFailed, err))
	}
	return nil
}

// GetProfiles implements store.ProfileStore.
func (s *KV) GetProfiles(ctx context.Context) ([]domain.Profile, error) {
	raw, ok, err := s.get(ctx, keyProfiles)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Profile{}, nil
	}
	var profiles []domain.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, store.NewStoreError("profile", "load", "decoding collection",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}
	return profiles, nil
}

// SaveProfiles implements store.ProfileStore.
func (s *KV) SaveProfiles(ctx context.Context, profiles []domain.Profile) error {
	raw, err := json.Marshal(profiles)
	if err != nil {
		return store.NewStoreError("profile", "save", "encoding collection", err)
	}
	return s.set(ctx, keyProfiles, raw)
}

// GetActiveProfileID implements store.ProfileStore.
func (s *KV) GetActiveProfileID(ctx context.Context) (string, error) {
	raw, ok, err := s.get(ctx, keyActiveProfileID)
	if err != nil || !ok {
		return "", err
	}
	return string(raw), nil
}

// SaveActiveProfileID implements store.ProfileStore.
func (s *KV) SaveActiveProfileID(ctx context.Context, id string) error {
	return s.set(ctx, keyActiveProfileID, []byte(id))
}

// GetAppSettings implements store.SettingsStore.
func (s *KV) GetAppSettings(ctx context.Context) (domain.AppSettings, error) {
	raw, ok, err := s.get(ctx, keyAppSettings)
	if err != nil {
		return domain.AppSettings{}, err
	}
	if !ok {
		return domain.DefaultAppSettings(), nil
	}
	var settings domain.AppSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return domain.AppSettings{}, store.NewStoreError("settings", "load", "decoding settings",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}
	return settings, nil
}

// SaveAppSettings implements store.SettingsStore.
func (s *KV) SaveAppSettings(ctx context.Context, settings domain.AppSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return store.NewStoreError("settings", "save", "encoding settings", err)
	}
	return s.set(ctx, keyAppSettings, raw)
}
