package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/folem-api/internal/access"
	"github.com/phrazzld/folem-api/internal/api/middleware"
	"github.com/phrazzld/folem-api/internal/domain"
)

// memSettingsStore is an in-memory SettingsStore for gate tests.
type memSettingsStore struct {
	settings domain.AppSettings
}

func (m *memSettingsStore) GetAppSettings(ctx context.Context) (domain.AppSettings, error) {
	return m.settings, nil
}

func (m *memSettingsStore) SaveAppSettings(ctx context.Context, settings domain.AppSettings) error {
	m.settings = settings
	return nil
}

func newAccessRouter(t *testing.T, initial domain.AppSettings) (*chi.Mux, *access.Gate) {
	t.Helper()
	gate, err := access.NewGate(
		context.Background(),
		&memSettingsStore{settings: initial},
		access.Config{},
		testLogger(),
	)
	require.NoError(t, err)
	handler := NewAccessHandler(gate, testLogger())
	guard := middleware.NewParentModeMiddleware(gate)

	r := chi.NewRouter()
	r.Get("/api/access", handler.GetStatus)
	r.Post("/api/access/unlock", handler.Unlock)
	r.Post("/api/access/lock", handler.Lock)
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireParentMode)
		r.Post("/api/access/pin", handler.SetPIN)
		r.Put("/api/access/pin", handler.ChangePIN)
		r.Delete("/api/access/pin", handler.DisablePIN)
		r.Get("/api/guarded", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r, gate
}

func decodeStatus(t *testing.T, body []byte) AccessStatusResponse {
	t.Helper()
	var status AccessStatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	return status
}

func TestAccessStatusDefaults(t *testing.T) {
	t.Parallel()
	router, _ := newAccessRouter(t, domain.DefaultAppSettings())

	rec := doRequest(t, router, http.MethodGet, "/api/access", "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeStatus(t, rec.Body.Bytes())
	assert.False(t, status.PINEnabled)
	assert.False(t, status.Unlocked)
}

func TestUnlockEndpoint(t *testing.T) {
	t.Parallel()
	settings := domain.DefaultAppSettings()
	settings.PINEnabled = true
	settings.PINCode = "1234"
	router, _ := newAccessRouter(t, settings)

	rec := doRequest(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"9999"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeStatus(t, rec.Body.Bytes())
	assert.True(t, status.Unlocked)
}

func TestUnlockWithoutPINSet(t *testing.T) {
	t.Parallel()
	router, _ := newAccessRouter(t, domain.DefaultAppSettings())

	rec := doRequest(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"1234"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetPINEndpoint(t *testing.T) {
	t.Parallel()
	router, gate := newAccessRouter(t, domain.DefaultAppSettings())

	rec := doRequest(t, router, http.MethodPost, "/api/access/pin", `{"pin":"1234","confirm":"9999"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, gate.Settings().PINEnabled, "a mismatch stores nothing")

	rec = doRequest(t, router, http.MethodPost, "/api/access/pin", `{"pin":"1234","confirm":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeStatus(t, rec.Body.Bytes())
	assert.True(t, status.PINEnabled)
	assert.True(t, status.Unlocked, "setting a PIN unlocks the session")
}

func TestSetPINRefusedWhileLocked(t *testing.T) {
	t.Parallel()
	settings := domain.DefaultAppSettings()
	settings.PINEnabled = true
	settings.PINCode = "1234"
	router, gate := newAccessRouter(t, settings)

	rec := doRequest(t, router, http.MethodPost, "/api/access/pin", `{"pin":"9999","confirm":"9999"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a locked session cannot replace the PIN")
	assert.Equal(t, "1234", gate.Settings().PINCode)
	assert.False(t, gate.Unlocked())

	rec = doRequest(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/access/pin", `{"pin":"9999","confirm":"9999"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9999", gate.Settings().PINCode)
}

func TestParentModeGuardedRoutes(t *testing.T) {
	t.Parallel()
	settings := domain.DefaultAppSettings()
	settings.PINEnabled = true
	settings.PINCode = "1234"
	router, _ := newAccessRouter(t, settings)

	rec := doRequest(t, router, http.MethodGet, "/api/guarded", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "locked session blocks guarded routes")

	rec = doRequest(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/guarded", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardedRoutesOpenWhilePINDisabled(t *testing.T) {
	t.Parallel()
	router, _ := newAccessRouter(t, domain.DefaultAppSettings())

	rec := doRequest(t, router, http.MethodGet, "/api/guarded", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChangeAndDisablePIN(t *testing.T) {
	t.Parallel()
	settings := domain.DefaultAppSettings()
	settings.PINEnabled = true
	settings.PINCode = "1234"
	router, gate := newAccessRouter(t, settings)

	rec := doRequest(t, router, http.MethodPut, "/api/access/pin", `{"pin":"5678","confirm":"5678"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "change requires an unlocked session")

	rec = doRequest(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/access/pin", `{"pin":"5678","confirm":"5678"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5678", gate.Settings().PINCode)

	rec = doRequest(t, router, http.MethodDelete, "/api/access/pin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeStatus(t, rec.Body.Bytes())
	assert.False(t, status.PINEnabled)
}

func TestLockEndpoint(t *testing.T) {
	t.Parallel()
	settings := domain.DefaultAppSettings()
	settings.PINEnabled = true
	settings.PINCode = "1234"
	router, _ := newAccessRouter(t, settings)

	rec := doRequest(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/access/lock", "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeStatus(t, rec.Body.Bytes())
	assert.False(t, status.Unlocked)
}
