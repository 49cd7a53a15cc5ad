package mastery

// Params defines the configurable thresholds for mastery scoring.
//
// Levels are evaluated by descending threshold, first match wins:
// accuracy >= FullMasteryAccuracy with at least FullMasteryAttempts
// attempts yields level 5; otherwise the accuracy bands assign levels
// 4 down to 2; any attempted symbol floors at level 1.
type Params struct {
	// FullMasteryAccuracy is the minimum accuracy for level 5.
	FullMasteryAccuracy float64
	// FullMasteryAttempts is the minimum attempt count for level 5.
	// Accuracy alone cannot reach full mastery on a lucky short streak.
	FullMasteryAttempts int
	// Level4Accuracy, Level3Accuracy and Level2Accuracy are the lower
	// bounds of the remaining accuracy bands.
	Level4Accuracy float64
	Level3Accuracy float64
	Level2Accuracy float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		FullMasteryAccuracy: 0.9,
		FullMasteryAttempts: 5,
		Level4Accuracy:      0.8,
		Level3Accuracy:      0.7,
		Level2Accuracy:      0.5,
	}
}
