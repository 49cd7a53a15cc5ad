package speech

import (
	"log/slog"

	"github.com/phrazzld/folem-api/internal/domain"
)

// LogSynthesizer is a Synthesizer that only logs utterances. The real
// synthesis runs in the UI shell, which subscribes to these requests;
// the server process never produces audio itself.
type LogSynthesizer struct {
	logger *slog.Logger
}

// NewLogSynthesizer creates a LogSynthesizer.
func NewLogSynthesizer(logger *slog.Logger) *LogSynthesizer {
	return &LogSynthesizer{logger: logger.With("component", "synthesizer")}
}

// Speak implements Synthesizer.
func (s *LogSynthesizer) Speak(text string, v domain.Voice) {
	s.logger.Info("speak requested", "text", text, "voice", v.Name, "lang", v.Lang)
}

// Stop implements Synthesizer.
func (s *LogSynthesizer) Stop() {
	s.logger.Info("stop requested")
}
