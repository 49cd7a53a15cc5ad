// Package access implements the parent-mode session gate. Actions that
// manage profiles or settings pass through the gate, which either runs
// them immediately or defers them until the caregiver enters the PIN.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/folem-api/internal/domain"
)

// Gate errors.
var (
	// ErrWrongPIN is returned when the entered PIN does not match the
	// stored one.
	ErrWrongPIN = errors.New("wrong PIN")

	// ErrPINNotSet is returned when PIN entry is attempted before any
	// PIN has been configured.
	ErrPINNotSet = errors.New("no PIN has been set")
)

// Default session parameters. The caregiver stays unlocked for the
// timeout after the last successful entry; the auto-lock loop polls
// often enough that expiry feels immediate.
const (
	DefaultTimeout      = 5 * time.Minute
	DefaultPollInterval = 30 * time.Second
)

// GuardOutcome reports what Guard did with an action.
type GuardOutcome int

// Possible guard outcomes.
const (
	// GuardExecuted means the action ran synchronously.
	GuardExecuted GuardOutcome = iota
	// GuardPINRequired means the action was parked and PIN entry is
	// needed before it runs.
	GuardPINRequired
)

// SettingsStore persists the app settings record the gate owns.
type SettingsStore interface {
	GetAppSettings(ctx context.Context) (domain.AppSettings, error)
	SaveAppSettings(ctx context.Context, settings domain.AppSettings) error
}

// Config holds the gate's session parameters.
type Config struct {
	// Timeout is how long parent mode stays unlocked after the last
	// successful PIN entry.
	Timeout time.Duration
	// PollInterval is how often the auto-lock loop checks for expiry.
	PollInterval time.Duration
}

// Gate is the parent-mode session state machine. All methods are safe
// for concurrent use; the auto-lock loop runs on its own goroutine.
//
// Every settings mutation is written through to the store synchronously.
// When a write fails the in-memory state keeps the mutation and the
// error is propagated for the caller to surface.
type Gate struct {
	mu       sync.Mutex
	settings domain.AppSettings
	pending  func()

	store  SettingsStore
	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

// NewGate creates a gate seeded from the persisted app settings.
func NewGate(ctx context.Context, store SettingsStore, cfg Config, logger *slog.Logger) (*Gate, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	settings, err := store.GetAppSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading app settings: %w", err)
	}

	return &Gate{
		settings: settings,
		store:    store,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger.With("component", "access_gate"),
	}, nil
}

// withClock overrides the gate's clock. Test hook.
func (g *Gate) withClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Settings returns a snapshot of the current app settings.
func (g *Gate) Settings() domain.AppSettings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings
}

// Unlocked reports whether parent mode is active and the session has
// not expired.
func (g *Gate) Unlocked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unlockedLocked()
}

func (g *Gate) unlockedLocked() bool {
	if !g.settings.ParentModeActive {
		return false
	}
	return g.now().Sub(g.settings.LastPINEntry) <= g.cfg.Timeout
}

// Guard runs the action immediately when no PIN protection applies or
// the session is unlocked. Otherwise the action is parked in the single
// pending slot, replacing any action already parked there, and the
// caller must prompt for the PIN.
func (g *Gate) Guard(action func()) GuardOutcome {
	g.mu.Lock()
	if !g.settings.PINEnabled || g.unlockedLocked() {
		g.mu.Unlock()
		action()
		return GuardExecuted
	}
	if g.pending != nil {
		g.logger.Debug("replacing pending protected action")
	}
	g.pending = action
	g.mu.Unlock()
	return GuardPINRequired
}

// SubmitPIN compares the entered PIN against the stored one. On match
// it unlocks parent mode, refreshes the session clock, persists the
// session state and runs the pending action exactly once. Entering the
// correct PIN while already unlocked just refreshes the session.
func (g *Gate) SubmitPIN(ctx context.Context, pin string) error {
	if err := domain.ValidatePIN(pin); err != nil {
		return err
	}

	g.mu.Lock()
	if !g.settings.PINEnabled || g.settings.PINCode == "" {
		g.mu.Unlock()
		return ErrPINNotSet
	}
	if pin != g.settings.PINCode {
		g.mu.Unlock()
		return ErrWrongPIN
	}

	g.settings.ParentModeActive = true
	g.settings.LastPINEntry = g.now()
	pending := g.pending
	g.pending = nil
	settings := g.settings
	g.mu.Unlock()

	if pending != nil {
		pending()
	}

	if err := g.store.SaveAppSettings(ctx, settings); err != nil {
		return fmt.Errorf("persisting unlock: %w", err)
	}
	return nil
}

// Cancel discards the pending action without running it. Closing the
// PIN dialog maps to this.
func (g *Gate) Cancel() {
	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()
}

// SetPIN stores a new PIN, enables protection and unlocks the session.
// Used by both the first-time set flow and the change flow once the
// confirmation step has passed.
func (g *Gate) SetPIN(ctx context.Context, pin string) error {
	if err := domain.ValidatePIN(pin); err != nil {
		return err
	}

	g.mu.Lock()
	g.settings.PINEnabled = true
	g.settings.PINCode = pin
	g.settings.ParentModeActive = true
	g.settings.LastPINEntry = g.now()
	settings := g.settings
	g.mu.Unlock()

	if err := g.store.SaveAppSettings(ctx, settings); err != nil {
		return fmt.Errorf("persisting PIN: %w", err)
	}
	return nil
}

// DisablePIN turns PIN protection off and clears the stored PIN and
// session state. Callers must route this through Guard.
func (g *Gate) DisablePIN(ctx context.Context) error {
	g.mu.Lock()
	g.settings = domain.DefaultAppSettings()
	g.pending = nil
	settings := g.settings
	g.mu.Unlock()

	if err := g.store.SaveAppSettings(ctx, settings); err != nil {
		return fmt.Errorf("persisting PIN disable: %w", err)
	}
	return nil
}

// Lock ends the parent-mode session immediately.
func (g *Gate) Lock(ctx context.Context) error {
	g.mu.Lock()
	g.settings.ParentModeActive = false
	g.pending = nil
	settings := g.settings
	g.mu.Unlock()

	if err := g.store.SaveAppSettings(ctx, settings); err != nil {
		return fmt.Errorf("persisting lock: %w", err)
	}
	return nil
}

// CheckTimeout locks parent mode when the session has been idle longer
// than the configured timeout. Returns true when it flipped the state.
func (g *Gate) CheckTimeout(ctx context.Context) (bool, error) {
	g.mu.Lock()
	if !g.settings.PINEnabled || !g.settings.ParentModeActive {
		g.mu.Unlock()
		return false, nil
	}
	if g.now().Sub(g.settings.LastPINEntry) <= g.cfg.Timeout {
		g.mu.Unlock()
		return false, nil
	}

	g.settings.ParentModeActive = false
	settings := g.settings
	g.mu.Unlock()

	g.logger.Info("parent mode expired, locking")
	if err := g.store.SaveAppSettings(ctx, settings); err != nil {
		return true, fmt.Errorf("persisting timeout lock: %w", err)
	}
	return true, nil
}

// RunAutoLock polls for session expiry until the context is canceled.
// Run it on its own goroutine; it owns no resources beyond the ticker.
func (g *Gate) RunAutoLock(ctx context.Context) {
	ticker := time.NewTicker(g.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := g.CheckTimeout(ctx); err != nil {
				g.logger.Error("auto-lock check failed", "error", err)
			}
		}
	}
}
