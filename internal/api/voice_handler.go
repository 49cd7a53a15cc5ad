package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/folem-api/internal/api/shared"
	"github.com/phrazzld/folem-api/internal/domain"
	"github.com/phrazzld/folem-api/internal/events"
	"github.com/phrazzld/folem-api/internal/speech"
)

// ReportVoicesRequest represents the request body the UI shell sends
// when the platform's installed-voice list changes.
type ReportVoicesRequest struct {
	Voices []domain.Voice `json:"voices"`
}

// SelectVoiceRequest represents the request body for a manual voice
// override.
type SelectVoiceRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// SpeakRequest represents the request body for speaking a sentence.
type SpeakRequest struct {
	Text string `json:"text"`
}

// VoiceListResponse reports the installed voices in preference order
// and the one currently in use.
type VoiceListResponse struct {
	Voices  []domain.Voice `json:"voices"`
	Current *domain.Voice  `json:"current,omitempty"`
}

// VoiceHandler handles speech and voice-selection HTTP requests.
type VoiceHandler struct {
	manager   *speech.Manager
	emitter   *events.VoiceEmitter
	logger    *slog.Logger
}

// NewVoiceHandler creates a new VoiceHandler. The emitter is the same
// one the speech manager subscribes to.
func NewVoiceHandler(manager *speech.Manager, emitter *events.VoiceEmitter, logger *slog.Logger) *VoiceHandler {
	return &VoiceHandler{
		manager:   manager,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "voice_handler")),
	}
}

// ReportVoices handles PUT /api/voices requests. The UI shell calls
// this on startup and whenever the platform's voice list changes; the
// manager re-runs default selection off the emitted event.
func (h *VoiceHandler) ReportVoices(w http.ResponseWriter, r *http.Request) {
	var req ReportVoicesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	h.emitter.Emit(events.VoiceListChanged{Voices: req.Voices})
	shared.RespondWithJSON(w, r, http.StatusOK, VoiceListResponse{
		Voices:  h.manager.Voices(),
		Current: h.manager.CurrentVoice(),
	})
}

// ListVoices handles GET /api/voices requests.
func (h *VoiceHandler) ListVoices(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, VoiceListResponse{
		Voices:  h.manager.Voices(),
		Current: h.manager.CurrentVoice(),
	})
}

// SelectVoice handles PUT /api/voices/current requests.
func (h *VoiceHandler) SelectVoice(w http.ResponseWriter, r *http.Request) {
	var req SelectVoiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if !h.manager.SetVoice(req.Name) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Voice not installed")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, VoiceListResponse{
		Voices:  h.manager.Voices(),
		Current: h.manager.CurrentVoice(),
	})
}

// Speak handles POST /api/speak requests. With no voice installed the
// request is accepted and nothing is spoken.
func (h *VoiceHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req SpeakRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	h.manager.Speak(req.Text)
	w.WriteHeader(http.StatusAccepted)
}

// StopSpeaking handles POST /api/speak/stop requests.
func (h *VoiceHandler) StopSpeaking(w http.ResponseWriter, r *http.Request) {
	h.manager.Stop()
	w.WriteHeader(http.StatusNoContent)
}
