// Package share creates short-lived share codes that let one caregiver
// hand a profile to another device. The code is meant to be read aloud
// or copied by hand, so the alphabet omits characters that are easy to
// confuse (no I, O, 0 or 1).
package share

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/folem-api/internal/domain"
	"github.com/phrazzld/folem-api/internal/store"
)

// codeAlphabet holds the characters a share code may use.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the number of characters in a share code.
const CodeLength = 6

// DefaultTTL is how long a share code stays redeemable.
const DefaultTTL = 24 * time.Hour

// Share is a profile snapshot published under a short code.
type Share struct {
	ID        string         `json:"id"`
	Code      string         `json:"code"`
	Profile   domain.Profile `json:"profile"`
	CreatedAt time.Time      `json:"createdAt"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// Expired reports whether the share can no longer be redeemed.
func (s *Share) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Service mints share codes for profiles. Redemption requires a relay
// between devices, which this build does not carry, so ImportByCode is
// a deliberate stub.
type Service struct {
	ttl time.Duration
	now func() time.Time
}

// NewService creates a share service with the given code lifetime. A
// non-positive ttl falls back to DefaultTTL.
func NewService(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{ttl: ttl, now: time.Now}
}

// Generate mints a fresh share for the profile.
func (s *Service) Generate(profile domain.Profile) (*Share, error) {
	code, err := newCode()
	if err != nil {
		return nil, fmt.Errorf("generating share code: %w", err)
	}
	now := s.now()
	return &Share{
		ID:        uuid.New().String(),
		Code:      code,
		Profile:   profile,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}, nil
}

// ImportByCode would fetch a shared profile from a relay by its code.
// No relay exists in this build.
func (s *Service) ImportByCode(code string) (*domain.Profile, error) {
	return nil, fmt.Errorf("import by share code: %w", store.ErrNotImplemented)
}

func newCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
