package domain

import "time"

// PINLength is the required number of digits in a parent-mode PIN.
const PINLength = 4

// AppSettings is the process-wide settings record backing the
// parent-mode gate. There is exactly one instance, owned by the
// application and persisted alongside the profile collection.
//
// The PIN is stored in clear in local persistence. The threat model is
// a child poking at the device, not an attacker with filesystem access.
type AppSettings struct {
	PINEnabled       bool      `json:"pin_enabled"`
	PINCode          string    `json:"pin_code"`
	ParentModeActive bool      `json:"parent_mode_active"`
	LastPINEntry     time.Time `json:"last_pin_entry"`
}

// DefaultAppSettings returns the first-run settings: no PIN configured
// and parent mode locked.
func DefaultAppSettings() AppSettings {
	return AppSettings{}
}

// ValidatePIN checks that the candidate is exactly PINLength numeric
// digits. Input filtering at entry time should make failures rare; this
// is the final check before a PIN is stored or compared.
func ValidatePIN(pin string) error {
	if len(pin) != PINLength {
		return ErrInvalidPIN
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}
