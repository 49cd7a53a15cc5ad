package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SymbolKind discriminates between symbols that ship with the built-in
// catalog and symbols a caregiver added to a profile.
type SymbolKind string

// Possible symbol kinds.
const (
	SymbolKindCatalog SymbolKind = "catalog"
	SymbolKindCustom  SymbolKind = "custom"
)

// MaxSymbolImageBytes caps the size of a custom symbol's embedded image
// data URI.
const MaxSymbolImageBytes = 5 * 1024 * 1024

// Validation errors for symbols.
var (
	ErrEmptySymbolID       = errors.New("symbol ID cannot be empty")
	ErrEmptySymbolLabel    = errors.New("symbol label cannot be empty")
	ErrEmptySymbolCategory = errors.New("symbol category cannot be empty")
	ErrSymbolImageTooLarge = fmt.Errorf("symbol image exceeds %d bytes", MaxSymbolImageBytes)
)

// Symbol is a communication tile the child can tap. It is either a
// CatalogSymbol or a CustomSymbol; the two variants are kept distinct so
// callers switch on the concrete type instead of probing marker fields.
type Symbol interface {
	SymbolID() string
	SymbolLabel() string
	SymbolEmoji() string
	SymbolCategory() string
	Kind() SymbolKind
}

// CatalogSymbol is a tile from the built-in symbol catalog.
type CatalogSymbol struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Emoji    string `json:"emoji"`
	Category string `json:"category"`
}

// SymbolID implements Symbol.
func (s CatalogSymbol) SymbolID() string { return s.ID }

// SymbolLabel implements Symbol.
func (s CatalogSymbol) SymbolLabel() string { return s.Label }

// SymbolEmoji implements Symbol.
func (s CatalogSymbol) SymbolEmoji() string { return s.Emoji }

// SymbolCategory implements Symbol.
func (s CatalogSymbol) SymbolCategory() string { return s.Category }

// Kind implements Symbol.
func (s CatalogSymbol) Kind() SymbolKind { return SymbolKindCatalog }

// CustomSymbol is a tile a caregiver created for one profile. It may
// carry an embedded image as a data URI. Custom symbols are immutable
// once created; they disappear only with explicit removal or profile
// deletion.
type CustomSymbol struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Emoji    string `json:"emoji"`
	Category string `json:"category"`
	ImageURL string `json:"image_url,omitempty"`
}

// SymbolID implements Symbol.
func (s CustomSymbol) SymbolID() string { return s.ID }

// SymbolLabel implements Symbol.
func (s CustomSymbol) SymbolLabel() string { return s.Label }

// SymbolEmoji implements Symbol.
func (s CustomSymbol) SymbolEmoji() string { return s.Emoji }

// SymbolCategory implements Symbol.
func (s CustomSymbol) SymbolCategory() string { return s.Category }

// Kind implements Symbol.
func (s CustomSymbol) Kind() SymbolKind { return SymbolKindCustom }

// Validate checks if the CustomSymbol has valid data.
func (s CustomSymbol) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptySymbolID
	}
	if strings.TrimSpace(s.Label) == "" {
		return ErrEmptySymbolLabel
	}
	if strings.TrimSpace(s.Category) == "" {
		return ErrEmptySymbolCategory
	}
	if len(s.ImageURL) > MaxSymbolImageBytes {
		return ErrSymbolImageTooLarge
	}
	return nil
}

// symbolEnvelope is the wire shape shared by both symbol variants. The
// kind field disambiguates on decode.
type symbolEnvelope struct {
	Kind     SymbolKind `json:"kind"`
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Emoji    string     `json:"emoji"`
	Category string     `json:"category"`
	ImageURL string     `json:"image_url,omitempty"`
}

// SymbolList is an ordered sequence of symbols that survives JSON
// round trips with the variant of each element intact.
type SymbolList []Symbol

// MarshalJSON implements json.Marshaler.
func (l SymbolList) MarshalJSON() ([]byte, error) {
	envelopes := make([]symbolEnvelope, len(l))
	for i, s := range l {
		envelopes[i] = symbolEnvelope{
			Kind:     s.Kind(),
			ID:       s.SymbolID(),
			Label:    s.SymbolLabel(),
			Emoji:    s.SymbolEmoji(),
			Category: s.SymbolCategory(),
		}
		if custom, ok := s.(CustomSymbol); ok {
			envelopes[i].ImageURL = custom.ImageURL
		}
	}
	return json.Marshal(envelopes)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *SymbolList) UnmarshalJSON(data []byte) error {
	var envelopes []symbolEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return err
	}
	symbols := make(SymbolList, 0, len(envelopes))
	for _, env := range envelopes {
		switch env.Kind {
		case SymbolKindCatalog:
			symbols = append(symbols, CatalogSymbol{
				ID:       env.ID,
				Label:    env.Label,
				Emoji:    env.Emoji,
				Category: env.Category,
			})
		case SymbolKindCustom:
			symbols = append(symbols, CustomSymbol{
				ID:       env.ID,
				Label:    env.Label,
				Emoji:    env.Emoji,
				Category: env.Category,
				ImageURL: env.ImageURL,
			})
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSymbolKind, env.Kind)
		}
	}
	*l = symbols
	return nil
}

// JoinLabels derives the spoken sentence for a symbol sequence by
// joining the labels with single spaces.
func (l SymbolList) JoinLabels() string {
	labels := make([]string, len(l))
	for i, s := range l {
		labels[i] = s.SymbolLabel()
	}
	return strings.Join(labels, " ")
}
