package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/folem-api/internal/config"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 0, LogLevel: "info"},
		Storage: config.StorageConfig{Path: filepath.Join(t.TempDir(), "folem.db")},
		Access:  config.AccessConfig{PINTimeoutSeconds: 300, PollIntervalSeconds: 30},
		Speech:  config.SpeechConfig{TargetLang: "sq-AL"},
		Share:   config.ShareConfig{TTLHours: 24},
	}
	app, err := newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestApplication(t).setupRouter()

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestBoardRoutesWired(t *testing.T) {
	t.Parallel()
	router := newTestApplication(t).setupRouter()

	rec := do(t, router, http.MethodGet, "/api/access", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/voices", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// No profile selected yet.
	rec = do(t, router, http.MethodGet, "/api/profiles/active", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFullProfileLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestApplication(t).setupRouter()

	// PIN protection is off on first run, so caregiver routes are open.
	rec := do(t, router, http.MethodPost, "/api/profiles", `{"name":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/symbols?category=needs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/attempts", `{"symbol_id":"water","correct":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/progress", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCaregiverRoutesLockBehindPIN(t *testing.T) {
	t.Parallel()
	router := newTestApplication(t).setupRouter()

	rec := do(t, router, http.MethodPost, "/api/access/pin", `{"pin":"1234","confirm":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Setting a PIN unlocks the session, so caregiver routes still work.
	rec = do(t, router, http.MethodPost, "/api/profiles", `{"name":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/access/lock", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/profiles", `{"name":"Ben"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A locked session cannot swap in a fresh PIN to get back in.
	rec = do(t, router, http.MethodPost, "/api/access/pin", `{"pin":"9999","confirm":"9999"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"9999"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Board routes stay open to the child while locked.
	rec = do(t, router, http.MethodPost, "/api/attempts", `{"symbol_id":"water","correct":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/access/unlock", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/profiles", `{"name":"Ben"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
