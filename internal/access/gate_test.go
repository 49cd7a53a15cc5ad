package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/folem-api/internal/domain"
)

// fakeSettingsStore is an in-memory SettingsStore with failure
// injection for write-path tests.
type fakeSettingsStore struct {
	mu       sync.Mutex
	settings domain.AppSettings
	saves    int
	saveErr  error
}

func (s *fakeSettingsStore) GetAppSettings(ctx context.Context) (domain.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *fakeSettingsStore) SaveAppSettings(ctx context.Context, settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.settings = settings
	s.saves++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGate(t *testing.T, settings domain.AppSettings, at time.Time) (*Gate, *fakeSettingsStore) {
	t.Helper()
	store := &fakeSettingsStore{settings: settings}
	gate, err := NewGate(context.Background(), store, Config{}, testLogger())
	require.NoError(t, err)
	current := at
	gate.withClock(func() time.Time { return current })
	return gate, store
}

func TestGuardRunsImmediatelyWhenPINDisabled(t *testing.T) {
	t.Parallel()
	gate, _ := newTestGate(t, domain.DefaultAppSettings(), time.Now())

	ran := false
	outcome := gate.Guard(func() { ran = true })
	assert.Equal(t, GuardExecuted, outcome)
	assert.True(t, ran)
}

func TestGuardDefersWhenLocked(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	gate, _ := newTestGate(t, domain.AppSettings{PINEnabled: true, PINCode: "1234"}, now)

	ran := false
	outcome := gate.Guard(func() { ran = true })
	assert.Equal(t, GuardPINRequired, outcome)
	assert.False(t, ran, "a locked gate must never run the action synchronously")

	require.NoError(t, gate.SubmitPIN(context.Background(), "1234"))
	assert.True(t, ran, "the pending action runs after a correct PIN")
	assert.True(t, gate.Unlocked())
}

func TestGuardRunsImmediatelyWhenUnlocked(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	settings := domain.AppSettings{
		PINEnabled:       true,
		PINCode:          "1234",
		ParentModeActive: true,
		LastPINEntry:     now.Add(-time.Minute),
	}
	gate, _ := newTestGate(t, settings, now)

	ran := false
	assert.Equal(t, GuardExecuted, gate.Guard(func() { ran = true }))
	assert.True(t, ran)
}

func TestSecondGuardReplacesPendingAction(t *testing.T) {
	t.Parallel()
	now := time.Now()
	gate, _ := newTestGate(t, domain.AppSettings{PINEnabled: true, PINCode: "1234"}, now)

	firstRan, secondRan := false, false
	gate.Guard(func() { firstRan = true })
	gate.Guard(func() { secondRan = true })

	require.NoError(t, gate.SubmitPIN(context.Background(), "1234"))
	assert.False(t, firstRan, "an overwritten pending action is dropped silently")
	assert.True(t, secondRan)
}

func TestCancelDiscardsPendingAction(t *testing.T) {
	t.Parallel()
	now := time.Now()
	gate, _ := newTestGate(t, domain.AppSettings{PINEnabled: true, PINCode: "1234"}, now)

	ran := false
	gate.Guard(func() { ran = true })
	gate.Cancel()

	require.NoError(t, gate.SubmitPIN(context.Background(), "1234"))
	assert.False(t, ran, "a canceled action must not run on a later unlock")
}

func TestSubmitPINWrong(t *testing.T) {
	t.Parallel()
	gate, store := newTestGate(t, domain.AppSettings{PINEnabled: true, PINCode: "1234"}, time.Now())

	err := gate.SubmitPIN(context.Background(), "9999")
	assert.ErrorIs(t, err, ErrWrongPIN)
	assert.False(t, gate.Unlocked())
	assert.Zero(t, store.saves, "a failed entry must not persist anything")
}

func TestSubmitPINValidation(t *testing.T) {
	t.Parallel()
	gate, _ := newTestGate(t, domain.AppSettings{PINEnabled: true, PINCode: "1234"}, time.Now())

	assert.ErrorIs(t, gate.SubmitPIN(context.Background(), "12x4"), domain.ErrInvalidPIN)
	assert.ErrorIs(t, gate.SubmitPIN(context.Background(), "123"), domain.ErrInvalidPIN)
}

func TestSubmitPINWithoutConfiguredPIN(t *testing.T) {
	t.Parallel()
	gate, _ := newTestGate(t, domain.DefaultAppSettings(), time.Now())

	assert.ErrorIs(t, gate.SubmitPIN(context.Background(), "1234"), ErrPINNotSet)
}

func TestSubmitPINRefreshesSession(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	settings := domain.AppSettings{
		PINEnabled:       true,
		PINCode:          "1234",
		ParentModeActive: true,
		LastPINEntry:     start.Add(-4 * time.Minute),
	}
	gate, store := newTestGate(t, settings, start)

	require.NoError(t, gate.SubmitPIN(context.Background(), "1234"))
	assert.Equal(t, start, store.settings.LastPINEntry, "re-entry resets the session clock")
}

func TestCheckTimeoutBoundary(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		idle      time.Duration
		wantFlip  bool
		wantState bool
	}{
		{name: "just inside the window", idle: 299 * time.Second, wantFlip: false, wantState: true},
		{name: "just past the window", idle: 301 * time.Second, wantFlip: true, wantState: false},
		{name: "exactly at the window", idle: 300 * time.Second, wantFlip: false, wantState: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
			settings := domain.AppSettings{
				PINEnabled:       true,
				PINCode:          "1234",
				ParentModeActive: true,
				LastPINEntry:     now.Add(-tc.idle),
			}
			gate, _ := newTestGate(t, settings, now)

			flipped, err := gate.CheckTimeout(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.wantFlip, flipped)
			assert.Equal(t, tc.wantState, gate.Settings().ParentModeActive)
		})
	}
}

func TestCheckTimeoutNoopWhenLocked(t *testing.T) {
	t.Parallel()
	gate, store := newTestGate(t, domain.AppSettings{PINEnabled: true, PINCode: "1234"}, time.Now())

	flipped, err := gate.CheckTimeout(context.Background())
	require.NoError(t, err)
	assert.False(t, flipped)
	assert.Zero(t, store.saves)
}

func TestExpiredSessionRequiresPINAgain(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	settings := domain.AppSettings{
		PINEnabled:       true,
		PINCode:          "1234",
		ParentModeActive: true,
		LastPINEntry:     now.Add(-6 * time.Minute),
	}
	gate, _ := newTestGate(t, settings, now)

	ran := false
	outcome := gate.Guard(func() { ran = true })
	assert.Equal(t, GuardPINRequired, outcome)
	assert.False(t, ran)
}

func TestSetPIN(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	gate, store := newTestGate(t, domain.DefaultAppSettings(), now)

	require.NoError(t, gate.SetPIN(context.Background(), "4321"))
	settings := gate.Settings()
	assert.True(t, settings.PINEnabled)
	assert.Equal(t, "4321", settings.PINCode)
	assert.True(t, settings.ParentModeActive, "setting a PIN unlocks parent mode")
	assert.Equal(t, now, settings.LastPINEntry)
	assert.Equal(t, 1, store.saves)
}

func TestDisablePIN(t *testing.T) {
	t.Parallel()
	settings := domain.AppSettings{
		PINEnabled:       true,
		PINCode:          "1234",
		ParentModeActive: true,
		LastPINEntry:     time.Now(),
	}
	gate, store := newTestGate(t, settings, time.Now())

	require.NoError(t, gate.DisablePIN(context.Background()))
	assert.Equal(t, domain.DefaultAppSettings(), gate.Settings())
	assert.Equal(t, domain.DefaultAppSettings(), store.settings)
}

func TestLock(t *testing.T) {
	t.Parallel()
	now := time.Now()
	settings := domain.AppSettings{
		PINEnabled:       true,
		PINCode:          "1234",
		ParentModeActive: true,
		LastPINEntry:     now,
	}
	gate, _ := newTestGate(t, settings, now)

	require.NoError(t, gate.Lock(context.Background()))
	assert.False(t, gate.Unlocked())
	assert.True(t, gate.Settings().PINEnabled, "locking keeps the PIN configured")
}

func TestWriteFailureKeepsInMemoryState(t *testing.T) {
	t.Parallel()
	now := time.Now()
	gate, store := newTestGate(t, domain.AppSettings{PINEnabled: true, PINCode: "1234"}, now)
	store.saveErr = errors.New("disk full")

	err := gate.SubmitPIN(context.Background(), "1234")
	require.Error(t, err)
	assert.True(t, gate.Unlocked(), "in-memory state stays authoritative when the write fails")
}

func TestRunAutoLockStopsOnCancel(t *testing.T) {
	t.Parallel()
	store := &fakeSettingsStore{settings: domain.AppSettings{PINEnabled: true, PINCode: "1234"}}
	gate, err := NewGate(context.Background(), store, Config{PollInterval: time.Millisecond}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gate.RunAutoLock(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("auto-lock loop did not stop after cancellation")
	}
}
