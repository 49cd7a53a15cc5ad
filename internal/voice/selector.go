// Package voice scores and ranks the synthesis voices exposed by the
// host platform. The target language is Albanian by default; when no
// native voice exists the scoring falls back to phonetically close
// languages so the child still hears familiar vowels and consonants.
package voice

import (
	"sort"
	"strings"

	"github.com/phrazzld/folem-api/internal/domain"
)

// Params defines the scoring weights for voice selection.
type Params struct {
	// TargetLang is the preferred language-region tag, e.g. "sq-AL".
	TargetLang string

	// ExactLangScore rewards a voice whose tag matches TargetLang
	// exactly; BaseLangScore rewards a match on the language part alone.
	ExactLangScore int
	BaseLangScore  int

	// FemaleVoiceBonus rewards voices whose name marks them as female;
	// the timbre reads as closer to a child's voice.
	FemaleVoiceBonus int
	// VendorBonuses rewards name substrings that correlate with
	// synthesis quality.
	VendorBonuses map[string]int

	// PhoneticNeighbors maps language codes to a bonus for languages
	// phonetically close to the target, used when no native voice is
	// installed. A voice receives at most one neighbor bonus.
	PhoneticNeighbors map[string]int

	// FemaleMarkers are lowercase substrings of a voice name that mark
	// it as female.
	FemaleMarkers []string
}

// NewDefaultParams creates scoring weights tuned for Albanian.
func NewDefaultParams() *Params {
	return &Params{
		TargetLang:       "sq-AL",
		ExactLangScore:   100,
		BaseLangScore:    90,
		FemaleVoiceBonus: 25,
		VendorBonuses: map[string]int{
			"google":    20,
			"microsoft": 15,
		},
		// Ordered by phonetic similarity to Albanian: Italian shares
		// the vowel system, the Balkan languages the consonants.
		PhoneticNeighbors: map[string]int{
			"it": 35,
			"hr": 30,
			"sr": 28,
			"mk": 26,
			"el": 24,
			"ro": 22,
			"es": 18,
			"pt": 15,
		},
		FemaleMarkers: []string{"female", "femër"},
	}
}

// Selector ranks platform voices for the target language.
type Selector struct {
	params *Params
}

// NewSelector creates a Selector with the default Albanian weights.
func NewSelector() *Selector {
	return &Selector{params: NewDefaultParams()}
}

// NewSelectorWithParams creates a Selector with custom weights.
func NewSelectorWithParams(params *Params) *Selector {
	return &Selector{params: params}
}

// Score computes the suitability of one voice. Higher is better; a
// voice with no match on any criterion scores 0.
func (s *Selector) Score(v domain.Voice) int {
	name := strings.ToLower(v.Name)
	lang := strings.ToLower(v.Lang)
	targetExact := strings.ToLower(s.params.TargetLang)
	targetBase := baseLang(targetExact)

	score := 0
	switch {
	case lang == targetExact:
		score += s.params.ExactLangScore
	case baseLang(lang) == targetBase:
		score += s.params.BaseLangScore
	default:
		// No native match: at most one phonetic-neighbor bonus,
		// keyed on the voice's own language.
		if bonus, ok := s.params.PhoneticNeighbors[baseLang(lang)]; ok {
			score += bonus
		}
	}

	for _, marker := range s.params.FemaleMarkers {
		if strings.Contains(name, marker) {
			score += s.params.FemaleVoiceBonus
			break
		}
	}
	for vendor, bonus := range s.params.VendorBonuses {
		if strings.Contains(name, vendor) {
			score += bonus
		}
	}

	return score
}

// SelectDefault returns the highest-scoring voice, breaking ties by
// first occurrence in the input. Returns nil for an empty list; callers
// treat "no voice" as a valid silent state, not an error.
func (s *Selector) SelectDefault(voices []domain.Voice) *domain.Voice {
	if len(voices) == 0 {
		return nil
	}
	best := voices[0]
	bestScore := s.Score(best)
	for _, v := range voices[1:] {
		if score := s.Score(v); score > bestScore {
			best = v
			bestScore = score
		}
	}
	return &best
}

// Rank returns all voices ordered by descending score, stable for
// equal scores, for the manual voice picker.
func (s *Selector) Rank(voices []domain.Voice) []domain.Voice {
	ranked := make([]domain.Voice, len(voices))
	copy(ranked, voices)
	sort.SliceStable(ranked, func(i, j int) bool {
		return s.Score(ranked[i]) > s.Score(ranked[j])
	})
	return ranked
}

// baseLang strips the region from a language tag: "it-IT" becomes "it".
func baseLang(tag string) string {
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		return tag[:i]
	}
	return tag
}
