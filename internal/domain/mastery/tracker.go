// Package mastery computes per-symbol learning scores from game-round
// outcomes. The calculation is pure: given the same prior score and
// outcome it always produces the same result, so replaying an attempt
// history from empty reproduces the final score exactly.
package mastery

import (
	"time"

	"github.com/phrazzld/folem-api/internal/domain"
)

// Tracker derives updated learning scores from round outcomes.
type Tracker struct {
	params *Params
}

// NewTracker creates a Tracker with default scoring thresholds.
func NewTracker() *Tracker {
	return &Tracker{params: NewDefaultParams()}
}

// NewTrackerWithParams creates a Tracker with custom thresholds.
func NewTrackerWithParams(params *Params) *Tracker {
	return &Tracker{params: params}
}

// RecordAttempt returns the score for symbolID after one more game
// round. A nil prior means this is the symbol's first attempt. The
// returned score is a new value; the prior is never mutated.
//
// It performs no I/O: the caller fetches the prior score from the
// profile, calls RecordAttempt and writes the result back.
func (t *Tracker) RecordAttempt(
	prior *domain.LearningScore,
	symbolID string,
	correct bool,
	now time.Time,
) domain.LearningScore {
	if prior == nil {
		score := domain.LearningScore{
			SymbolID:     symbolID,
			AttemptCount: 1,
			LastPlayedAt: &now,
		}
		if correct {
			score.CorrectCount = 1
			score.MasteryLevel = 1
		}
		return score
	}

	score := domain.LearningScore{
		SymbolID:     prior.SymbolID,
		CorrectCount: prior.CorrectCount,
		AttemptCount: prior.AttemptCount + 1,
		LastPlayedAt: &now,
	}
	if correct {
		score.CorrectCount++
	}
	score.MasteryLevel = t.levelFor(score.CorrectCount, score.AttemptCount)
	return score
}

// levelFor maps an attempt history onto a 0-5 mastery level. Once a
// symbol has been attempted the level never falls back to 0: the final
// branch floors any attempted symbol at level 1.
func (t *Tracker) levelFor(correctCount, attemptCount int) int {
	if attemptCount == 0 {
		return 0
	}
	accuracy := float64(correctCount) / float64(attemptCount)
	switch {
	case accuracy >= t.params.FullMasteryAccuracy && attemptCount >= t.params.FullMasteryAttempts:
		return 5
	case accuracy >= t.params.Level4Accuracy:
		return 4
	case accuracy >= t.params.Level3Accuracy:
		return 3
	case accuracy >= t.params.Level2Accuracy:
		return 2
	default:
		return 1
	}
}

// Summary aggregates a profile's learning progress for the caregiver
// report.
type Summary struct {
	TotalSymbols    int     `json:"total_symbols"`
	TotalAttempts   int     `json:"total_attempts"`
	TotalCorrect    int     `json:"total_correct"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	MasteredSymbols int     `json:"mastered_symbols"`
	// LevelCounts[n] is the number of symbols currently at level n.
	LevelCounts [domain.MaxMasteryLevel + 1]int `json:"level_counts"`
}

// Summarize computes the aggregate progress report over a set of
// learning scores.
func Summarize(scores map[string]domain.LearningScore) Summary {
	var summary Summary
	for _, score := range scores {
		summary.TotalSymbols++
		summary.TotalAttempts += score.AttemptCount
		summary.TotalCorrect += score.CorrectCount
		if score.MasteryLevel >= domain.MinMasteryLevel && score.MasteryLevel <= domain.MaxMasteryLevel {
			summary.LevelCounts[score.MasteryLevel]++
		}
		if score.MasteryLevel == domain.MaxMasteryLevel {
			summary.MasteredSymbols++
		}
	}
	if summary.TotalAttempts > 0 {
		summary.OverallAccuracy = float64(summary.TotalCorrect) / float64(summary.TotalAttempts)
	}
	return summary
}
