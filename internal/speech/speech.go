// Package speech wires the platform speech capability to the voice
// selection heuristic. The platform synthesizes audio; this package
// only decides which voice to use and when speech is possible at all.
package speech

import (
	"log/slog"
	"sync"

	"github.com/phrazzld/folem-api/internal/domain"
	"github.com/phrazzld/folem-api/internal/events"
	"github.com/phrazzld/folem-api/internal/voice"
)

// Synthesizer is the speech capability exposed by the host platform.
type Synthesizer interface {
	// Speak queues the text for synthesis with the given voice.
	Speak(text string, v domain.Voice)
	// Stop cancels any in-flight synthesis.
	Stop()
}

// Manager owns the currently selected voice. It picks the best default
// at startup and again whenever the platform's voice list changes; a
// manual selection survives list changes as long as the voice is still
// installed.
//
// An empty voice list is a valid state: speech output is silently
// disabled until voices appear.
type Manager struct {
	mu      sync.Mutex
	synth   Synthesizer
	current *domain.Voice
	manual  bool
	voices  []domain.Voice

	selector *voice.Selector
	sub      *events.Subscription
	logger   *slog.Logger
}

// NewManager creates a manager, selects the default voice from the
// initial list and subscribes to voice-list changes.
func NewManager(
	synth Synthesizer,
	selector *voice.Selector,
	emitter *events.VoiceEmitter,
	initial []domain.Voice,
	logger *slog.Logger,
) *Manager {
	m := &Manager{
		synth:    synth,
		selector: selector,
		voices:   initial,
		logger:   logger.With("component", "speech_manager"),
	}
	m.current = selector.SelectDefault(initial)
	if m.current != nil {
		m.logger.Info("selected default voice", "voice", m.current.Name, "lang", m.current.Lang)
	} else {
		m.logger.Warn("no synthesis voices available, speech disabled")
	}
	m.sub = emitter.Subscribe(m.onVoicesChanged)
	return m
}

// Close releases the voice-list subscription.
func (m *Manager) Close() {
	if m.sub != nil {
		m.sub.Unsubscribe()
	}
}

// CurrentVoice returns the voice speech currently uses, or nil when
// none is available.
func (m *Manager) CurrentVoice() *domain.Voice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Voices returns the platform voice list ranked for the target
// language.
func (m *Manager) Voices() []domain.Voice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selector.Rank(m.voices)
}

// SetVoice manually overrides the selected voice by name. Returns false
// when no installed voice has that name.
func (m *Manager) SetVoice(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.voices {
		if v.Name == name {
			chosen := v
			m.current = &chosen
			m.manual = true
			return true
		}
	}
	return false
}

// Speak synthesizes the text with the current voice. Empty text and
// the no-voice state are both silent no-ops.
func (m *Manager) Speak(text string) {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()

	if text == "" || current == nil {
		return
	}
	m.synth.Speak(text, *current)
}

// Stop cancels any in-flight synthesis.
func (m *Manager) Stop() {
	m.synth.Stop()
}

// onVoicesChanged re-evaluates the selection against the new list. A
// manual choice is kept while it remains installed; otherwise the
// selector picks a fresh default.
func (m *Manager) onVoicesChanged(event events.VoiceListChanged) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.voices = event.Voices
	if m.manual && m.current != nil {
		for _, v := range event.Voices {
			if v.Name == m.current.Name {
				return
			}
		}
		m.manual = false
	}

	m.current = m.selector.SelectDefault(event.Voices)
	if m.current == nil {
		m.logger.Warn("voice list emptied, speech disabled")
	} else {
		m.logger.Info("reselected default voice", "voice", m.current.Name, "lang", m.current.Lang)
	}
}
