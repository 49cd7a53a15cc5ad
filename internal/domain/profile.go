package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors for profiles and their nested settings.
var (
	ErrEmptyProfileID    = errors.New("profile ID cannot be empty")
	ErrEmptyProfileName  = errors.New("profile name cannot be empty")
	ErrInvalidSymbolSize = errors.New("invalid symbol size")
	ErrInvalidSymbolStyle = errors.New("invalid symbol style")
	ErrFontScaleOutOfRange = errors.New("font scale must be between 0.8 and 1.4")
	ErrInvalidSpeechRate  = errors.New("speech rate must be greater than 0")
	ErrInvalidSpeechPitch = errors.New("speech pitch must be greater than 0")
)

// SymbolSize controls how large symbol tiles render.
type SymbolSize string

// Possible symbol sizes.
const (
	SymbolSizeSmall  SymbolSize = "sm"
	SymbolSizeMedium SymbolSize = "md"
	SymbolSizeLarge  SymbolSize = "lg"
	SymbolSizeXLarge SymbolSize = "xl"
)

// SymbolStyle controls the visual treatment of symbol tiles.
type SymbolStyle string

// Possible symbol styles.
const (
	SymbolStyleDefault SymbolStyle = "default"
	SymbolStyleRounded SymbolStyle = "rounded"
	SymbolStyleMinimal SymbolStyle = "minimal"
	SymbolStyleBold    SymbolStyle = "bold"
)

// VisualSettings holds per-profile display preferences. The rendering
// layer consumes these; the core only stores and validates them.
type VisualSettings struct {
	SymbolSize    SymbolSize  `json:"symbol_size"`
	SymbolStyle   SymbolStyle `json:"symbol_style"`
	HighContrast  bool        `json:"high_contrast"`
	ReducedMotion bool        `json:"reduced_motion"`
	FontScale     float64     `json:"font_scale"` // 0.8 - 1.4
}

// DefaultVisualSettings returns the settings a freshly created profile
// starts with.
func DefaultVisualSettings() VisualSettings {
	return VisualSettings{
		SymbolSize:  SymbolSizeMedium,
		SymbolStyle: SymbolStyleDefault,
		FontScale:   1.0,
	}
}

// Validate checks if the VisualSettings has valid data.
func (v VisualSettings) Validate() error {
	switch v.SymbolSize {
	case SymbolSizeSmall, SymbolSizeMedium, SymbolSizeLarge, SymbolSizeXLarge:
	default:
		return ErrInvalidSymbolSize
	}
	switch v.SymbolStyle {
	case SymbolStyleDefault, SymbolStyleRounded, SymbolStyleMinimal, SymbolStyleBold:
	default:
		return ErrInvalidSymbolStyle
	}
	if v.FontScale < 0.8 || v.FontScale > 1.4 {
		return ErrFontScaleOutOfRange
	}
	return nil
}

// SpeechSettings holds per-profile synthesis preferences. SelectedVoice
// is the platform voice name; empty means "use the automatic default".
type SpeechSettings struct {
	Rate          float64 `json:"rate"`
	Pitch         float64 `json:"pitch"`
	SelectedVoice string  `json:"selected_voice"`
}

// DefaultSpeechSettings returns the synthesis settings for a new profile.
func DefaultSpeechSettings() SpeechSettings {
	return SpeechSettings{
		Rate:  0.9,
		Pitch: 1.0,
	}
}

// Validate checks if the SpeechSettings has valid data.
func (s SpeechSettings) Validate() error {
	if s.Rate <= 0 {
		return ErrInvalidSpeechRate
	}
	if s.Pitch <= 0 {
		return ErrInvalidSpeechPitch
	}
	return nil
}

// FavoriteSentence is a saved symbol sequence. The label is derived from
// the symbol labels at creation time and the sentence is immutable once
// saved.
type FavoriteSentence struct {
	ID        string     `json:"id"`
	Symbols   SymbolList `json:"symbols"`
	Label     string     `json:"label"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewFavoriteSentence creates a favorite from the current sentence
// builder selection. Returns an error when the selection is empty.
func NewFavoriteSentence(symbols []Symbol, now time.Time) (*FavoriteSentence, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptySentence
	}
	list := make(SymbolList, len(symbols))
	copy(list, symbols)
	return &FavoriteSentence{
		ID:        uuid.New().String(),
		Symbols:   list,
		Label:     list.JoinLabels(),
		CreatedAt: now,
	}, nil
}

// ErrEmptySentence is returned when saving a favorite with no symbols.
var ErrEmptySentence = errors.New("sentence must contain at least one symbol")

// Profile represents one child's complete communication and learning
// state. Exactly one profile is active at a time, or none; the active
// pointer lives in the store, not on the entity.
type Profile struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	CreatedAt         time.Time                `json:"created_at"`
	CustomSymbols     []CustomSymbol           `json:"custom_symbols"`
	FavoriteSentences []FavoriteSentence       `json:"favorite_sentences"`
	LearningProgress  map[string]LearningScore `json:"learning_progress"`
	HiddenSymbols     []string                 `json:"hidden_symbols"`
	VisualSettings    VisualSettings           `json:"visual_settings"`
	Speech            SpeechSettings           `json:"speech"`

	// Cloud-specific fields; unset until the profile has synced.
	CloudID      string     `json:"cloud_id,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// NewProfile creates a profile with the given display name, a fresh ID
// and default settings. Returns an error if validation fails.
func NewProfile(name string) (*Profile, error) {
	profile := &Profile{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(name),
		CreatedAt:         time.Now().UTC(),
		CustomSymbols:     []CustomSymbol{},
		FavoriteSentences: []FavoriteSentence{},
		LearningProgress:  map[string]LearningScore{},
		HiddenSymbols:     []string{},
		VisualSettings:    DefaultVisualSettings(),
		Speech:            DefaultSpeechSettings(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
// Returns an error if any field fails validation.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return ErrEmptyProfileID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProfileName
	}
	if err := p.VisualSettings.Validate(); err != nil {
		return err
	}
	if err := p.Speech.Validate(); err != nil {
		return err
	}
	for _, symbol := range p.CustomSymbols {
		if err := symbol.Validate(); err != nil {
			return err
		}
	}
	for _, score := range p.LearningProgress {
		if err := score.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsSymbolHidden reports whether the given symbol ID is hidden for this
// profile.
func (p *Profile) IsSymbolHidden(symbolID string) bool {
	for _, id := range p.HiddenSymbols {
		if id == symbolID {
			return true
		}
	}
	return false
}
