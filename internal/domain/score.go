package domain

import (
	"errors"
	"time"
)

// Mastery level bounds. Level 0 means the symbol has never been
// attempted; level 5 means the symbol is fully mastered.
const (
	MinMasteryLevel = 0
	MaxMasteryLevel = 5
)

// Validation errors for learning scores.
var (
	ErrEmptyScoreSymbolID  = errors.New("learning score symbol ID cannot be empty")
	ErrNegativeAttempts    = errors.New("attempt count cannot be negative")
	ErrCorrectExceedsTotal = errors.New("correct count cannot exceed attempt count")
	ErrMasteryOutOfRange   = errors.New("mastery level must be between 0 and 5")
)

// LearningScore tracks a child's mastery of one symbol across learning
// game rounds. MasteryLevel is always derived from the counts by the
// mastery package; it is never set independently of an attempt.
type LearningScore struct {
	SymbolID     string     `json:"symbol_id"`
	CorrectCount int        `json:"correct_count"`
	AttemptCount int        `json:"attempt_count"`
	LastPlayedAt *time.Time `json:"last_played_at"`
	MasteryLevel int        `json:"mastery_level"`
}

// Accuracy returns the fraction of attempts answered correctly, or 0
// when the symbol has never been attempted.
func (s LearningScore) Accuracy() float64 {
	if s.AttemptCount == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.AttemptCount)
}

// Validate checks if the LearningScore has valid data.
func (s LearningScore) Validate() error {
	if s.SymbolID == "" {
		return ErrEmptyScoreSymbolID
	}
	if s.AttemptCount < 0 || s.CorrectCount < 0 {
		return ErrNegativeAttempts
	}
	if s.CorrectCount > s.AttemptCount {
		return ErrCorrectExceedsTotal
	}
	if s.MasteryLevel < MinMasteryLevel || s.MasteryLevel > MaxMasteryLevel {
		return ErrMasteryOutOfRange
	}
	return nil
}
