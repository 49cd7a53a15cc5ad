// Package events provides a small in-process publish/subscribe channel.
//
// Platform callbacks such as "the voice list changed" arrive as ambient
// events; this package turns them into explicit subscriptions with a
// defined teardown contract so reacting components can release their
// interest when they shut down.
package events

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/folem-api/internal/domain"
)

// VoiceListChanged announces that the host platform's set of synthesis
// voices changed.
type VoiceListChanged struct {
	Voices []domain.Voice
}

// Subscription represents one subscriber's interest in voice-list
// changes. Unsubscribe releases it; calling Unsubscribe more than once
// is harmless.
type Subscription struct {
	id      int
	emitter *VoiceEmitter
	once    sync.Once
}

// Unsubscribe removes the subscriber from the emitter.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.emitter.remove(s.id)
	})
}

// VoiceEmitter dispatches voice-list changes to registered handlers.
// Handlers run synchronously on the emitting goroutine, in
// subscription order.
type VoiceEmitter struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(VoiceListChanged)
	logger   *slog.Logger
}

// NewVoiceEmitter creates a new emitter.
func NewVoiceEmitter(logger *slog.Logger) *VoiceEmitter {
	return &VoiceEmitter{
		handlers: make(map[int]func(VoiceListChanged)),
		logger:   logger.With("component", "voice_emitter"),
	}
}

// Subscribe registers a handler for voice-list changes and returns its
// subscription.
func (e *VoiceEmitter) Subscribe(handler func(VoiceListChanged)) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = handler
	e.logger.Debug("registered voice-list subscriber", "subscriber_count", len(e.handlers))
	return &Subscription{id: id, emitter: e}
}

// Emit publishes the event to all current subscribers.
func (e *VoiceEmitter) Emit(event VoiceListChanged) {
	e.mu.RLock()
	ids := make([]int, 0, len(e.handlers))
	for id := range e.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(VoiceListChanged), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, e.handlers[id])
	}
	e.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (e *VoiceEmitter) remove(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.handlers, id)
}
