package access

import (
	"context"
	"errors"

	"github.com/phrazzld/folem-api/internal/domain"
)

// Flow errors.
var (
	// ErrPINIncomplete is returned when Submit is called before four
	// digits have been entered.
	ErrPINIncomplete = errors.New("PIN entry incomplete")

	// ErrPINMismatch is returned when the confirmation does not match
	// the first entry during set/change.
	ErrPINMismatch = errors.New("PINs do not match")
)

// Mode selects the PIN dialog behavior.
type Mode string

// Possible flow modes.
const (
	// ModeEnter compares the entry against the stored PIN.
	ModeEnter Mode = "enter"
	// ModeSet captures and confirms a first-time PIN.
	ModeSet Mode = "set"
	// ModeChange captures and confirms a replacement PIN. The old PIN
	// is not required first; the flow is already behind Guard.
	ModeChange Mode = "change"
)

// Step identifies which entry field the flow is filling.
type Step string

// Possible flow steps.
const (
	StepEnter   Step = "enter"
	StepConfirm Step = "confirm"
)

// Flow models one PIN dialog session: a primary entry and, for set and
// change, a confirmation entry. Non-digit input is filtered as it is
// typed, never rejected after the fact.
type Flow struct {
	mode    Mode
	step    Step
	primary string
	confirm string
}

// NewFlow starts a PIN dialog flow in the given mode.
func NewFlow(mode Mode) *Flow {
	return &Flow{mode: mode, step: StepEnter}
}

// Mode returns the flow's mode.
func (f *Flow) Mode() Mode { return f.mode }

// Step returns the entry step the flow is currently on.
func (f *Flow) Step() Step { return f.step }

// Value returns the digits entered so far on the current step.
func (f *Flow) Value() string {
	if f.step == StepConfirm {
		return f.confirm
	}
	return f.primary
}

// Input replaces the current step's entry with the digits found in raw,
// capped at the PIN length. Everything that is not an ASCII digit is
// dropped.
func (f *Flow) Input(raw string) {
	digits := make([]byte, 0, domain.PINLength)
	for i := 0; i < len(raw) && len(digits) < domain.PINLength; i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if f.step == StepConfirm {
		f.confirm = string(digits)
	} else {
		f.primary = string(digits)
	}
}

// Submit advances the flow.
//
// In enter mode it resolves the entry against the gate: a wrong PIN
// clears the entry and returns ErrWrongPIN so the dialog restarts from
// scratch.
//
// In set and change modes the first Submit moves to the confirmation
// step; the second stores the PIN through the gate when both entries
// match. A mismatch clears only the confirmation, keeping the primary
// entry, and returns ErrPINMismatch.
//
// Returns true when the flow has completed and the dialog can close.
func (f *Flow) Submit(ctx context.Context, gate *Gate) (bool, error) {
	switch f.mode {
	case ModeEnter:
		if len(f.primary) != domain.PINLength {
			return false, ErrPINIncomplete
		}
		if err := gate.SubmitPIN(ctx, f.primary); err != nil {
			if errors.Is(err, ErrWrongPIN) {
				f.primary = ""
			}
			return false, err
		}
		return true, nil

	case ModeSet, ModeChange:
		if f.step == StepEnter {
			if len(f.primary) != domain.PINLength {
				return false, ErrPINIncomplete
			}
			f.step = StepConfirm
			return false, nil
		}
		if len(f.confirm) != domain.PINLength {
			return false, ErrPINIncomplete
		}
		if f.primary != f.confirm {
			f.confirm = ""
			return false, ErrPINMismatch
		}
		if err := gate.SetPIN(ctx, f.primary); err != nil {
			return false, err
		}
		return true, nil

	default:
		return false, domain.ErrInvalidPIN
	}
}

// Reset returns the flow to its initial state.
func (f *Flow) Reset() {
	f.step = StepEnter
	f.primary = ""
	f.confirm = ""
}
