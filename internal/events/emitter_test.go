package events

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/folem-api/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubscribeAndEmit(t *testing.T) {
	t.Parallel()
	emitter := NewVoiceEmitter(testLogger())

	var received []VoiceListChanged
	emitter.Subscribe(func(e VoiceListChanged) {
		received = append(received, e)
	})

	event := VoiceListChanged{Voices: []domain.Voice{{Name: "Shqip", Lang: "sq-AL"}}}
	emitter.Emit(event)

	assert.Len(t, received, 1)
	assert.Equal(t, event, received[0])
}

func TestEmitOrderFollowsSubscriptionOrder(t *testing.T) {
	t.Parallel()
	emitter := NewVoiceEmitter(testLogger())

	var order []string
	emitter.Subscribe(func(VoiceListChanged) { order = append(order, "first") })
	emitter.Subscribe(func(VoiceListChanged) { order = append(order, "second") })
	emitter.Subscribe(func(VoiceListChanged) { order = append(order, "third") })

	emitter.Emit(VoiceListChanged{})
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()
	emitter := NewVoiceEmitter(testLogger())

	count := 0
	sub := emitter.Subscribe(func(VoiceListChanged) { count++ })

	emitter.Emit(VoiceListChanged{})
	sub.Unsubscribe()
	emitter.Emit(VoiceListChanged{})

	assert.Equal(t, 1, count)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()
	emitter := NewVoiceEmitter(testLogger())

	sub := emitter.Subscribe(func(VoiceListChanged) {})
	sub.Unsubscribe()
	sub.Unsubscribe()

	// Other subscribers keep working.
	count := 0
	emitter.Subscribe(func(VoiceListChanged) { count++ })
	emitter.Emit(VoiceListChanged{})
	assert.Equal(t, 1, count)
}

func TestEmitWithNoSubscribers(t *testing.T) {
	t.Parallel()
	emitter := NewVoiceEmitter(testLogger())
	emitter.Emit(VoiceListChanged{})
}
