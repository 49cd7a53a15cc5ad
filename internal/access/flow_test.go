package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/folem-api/internal/domain"
)

func TestFlowInputFiltersNonDigits(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain digits", raw: "1234", expected: "1234"},
		{name: "letters stripped", raw: "1a2b3c4d", expected: "1234"},
		{name: "capped at four", raw: "123456", expected: "1234"},
		{name: "symbols stripped", raw: "!@#1-2", expected: "12"},
		{name: "all filtered", raw: "abcd", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			flow := NewFlow(ModeEnter)
			flow.Input(tc.raw)
			assert.Equal(t, tc.expected, flow.Value())
		})
	}
}

func TestFlowEnterMode(t *testing.T) {
	t.Parallel()
	gate, _ := newTestGate(t, domain.AppSettings{PINEnabled: true, PINCode: "1234"}, time.Now())
	ctx := context.Background()

	flow := NewFlow(ModeEnter)
	flow.Input("12")
	done, err := flow.Submit(ctx, gate)
	assert.False(t, done)
	assert.ErrorIs(t, err, ErrPINIncomplete)

	// A wrong PIN restarts the whole entry.
	flow.Input("9999")
	done, err = flow.Submit(ctx, gate)
	assert.False(t, done)
	assert.ErrorIs(t, err, ErrWrongPIN)
	assert.Empty(t, flow.Value())

	flow.Input("1234")
	done, err = flow.Submit(ctx, gate)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, gate.Unlocked())
}

func TestFlowSetMode(t *testing.T) {
	t.Parallel()
	gate, _ := newTestGate(t, domain.DefaultAppSettings(), time.Now())
	ctx := context.Background()

	flow := NewFlow(ModeSet)
	flow.Input("2580")
	done, err := flow.Submit(ctx, gate)
	require.NoError(t, err)
	assert.False(t, done, "first submit moves to confirmation")
	assert.Equal(t, StepConfirm, flow.Step())

	// A mismatched confirmation restarts only the confirmation step.
	flow.Input("2581")
	done, err = flow.Submit(ctx, gate)
	assert.False(t, done)
	assert.ErrorIs(t, err, ErrPINMismatch)
	assert.Equal(t, StepConfirm, flow.Step())
	assert.Empty(t, flow.Value())

	flow.Input("2580")
	done, err = flow.Submit(ctx, gate)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "2580", gate.Settings().PINCode)
	assert.True(t, gate.Settings().PINEnabled)
}

func TestFlowChangeModeReplacesPIN(t *testing.T) {
	t.Parallel()
	settings := domain.AppSettings{PINEnabled: true, PINCode: "1111"}
	gate, _ := newTestGate(t, settings, time.Now())
	ctx := context.Background()

	flow := NewFlow(ModeChange)
	flow.Input("7777")
	_, err := flow.Submit(ctx, gate)
	require.NoError(t, err)
	flow.Input("7777")
	done, err := flow.Submit(ctx, gate)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "7777", gate.Settings().PINCode)
}

func TestFlowConfirmIncomplete(t *testing.T) {
	t.Parallel()
	gate, _ := newTestGate(t, domain.DefaultAppSettings(), time.Now())
	ctx := context.Background()

	flow := NewFlow(ModeSet)
	flow.Input("1234")
	_, err := flow.Submit(ctx, gate)
	require.NoError(t, err)

	flow.Input("12")
	done, err := flow.Submit(ctx, gate)
	assert.False(t, done)
	assert.ErrorIs(t, err, ErrPINIncomplete)
}

func TestFlowReset(t *testing.T) {
	t.Parallel()
	gate, _ := newTestGate(t, domain.DefaultAppSettings(), time.Now())

	flow := NewFlow(ModeSet)
	flow.Input("1234")
	_, err := flow.Submit(context.Background(), gate)
	require.NoError(t, err)
	flow.Input("99")

	flow.Reset()
	assert.Equal(t, StepEnter, flow.Step())
	assert.Empty(t, flow.Value())
}
