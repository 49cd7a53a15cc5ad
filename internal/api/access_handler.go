package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/folem-api/internal/access"
	"github.com/phrazzld/folem-api/internal/api/shared"
)

// PINRequest represents the request body for PIN entry and PIN
// creation. Confirm is required by the set and change endpoints.
type PINRequest struct {
	PIN     string `json:"pin" validate:"required,len=4,numeric"`
	Confirm string `json:"confirm,omitempty"`
}

// AccessStatusResponse reports the parent-mode session state. The PIN
// itself never leaves the process.
type AccessStatusResponse struct {
	PINEnabled       bool `json:"pin_enabled"`
	ParentModeActive bool `json:"parent_mode_active"`
	Unlocked         bool `json:"unlocked"`
}

// AccessHandler handles parent-mode session HTTP requests.
type AccessHandler struct {
	gate      *access.Gate
	logger    *slog.Logger
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(gate *access.Gate, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		gate:      gate,
		logger:    logger.With(slog.String("component", "access_handler")),
	}
}

// GetStatus handles GET /api/access requests.
func (h *AccessHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.statusResponse())
}

// Unlock handles POST /api/access/unlock requests. Entering the correct
// PIN while already unlocked refreshes the session.
func (h *AccessHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req PINRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	flow := access.NewFlow(access.ModeEnter)
	flow.Input(req.PIN)
	if _, err := flow.Submit(r.Context(), h.gate); err != nil {
		h.respondError(w, r, "unlock", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.statusResponse())
}

// Lock handles POST /api/access/lock requests. It also discards any
// pending protected action.
func (h *AccessHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Lock(r.Context()); err != nil {
		h.respondError(w, r, "lock", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.statusResponse())
}

// SetPIN handles POST /api/access/pin requests for first-time PIN
// creation. The confirmation entry must match.
func (h *AccessHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	h.capturePIN(w, r, access.ModeSet)
}

// ChangePIN handles PUT /api/access/pin requests. The route sits behind
// the parent-mode middleware, so the session is already unlocked.
func (h *AccessHandler) ChangePIN(w http.ResponseWriter, r *http.Request) {
	h.capturePIN(w, r, access.ModeChange)
}

// DisablePIN handles DELETE /api/access/pin requests.
func (h *AccessHandler) DisablePIN(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.DisablePIN(r.Context()); err != nil {
		h.respondError(w, r, "disable PIN", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.statusResponse())
}

// capturePIN runs the two-step capture/confirm flow for set and change.
func (h *AccessHandler) capturePIN(w http.ResponseWriter, r *http.Request, mode access.Mode) {
	var req PINRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	flow := access.NewFlow(mode)
	flow.Input(req.PIN)
	if _, err := flow.Submit(r.Context(), h.gate); err != nil {
		h.respondError(w, r, string(mode)+" PIN", err)
		return
	}
	flow.Input(req.Confirm)
	done, err := flow.Submit(r.Context(), h.gate)
	if err != nil {
		h.respondError(w, r, string(mode)+" PIN", err)
		return
	}
	if !done {
		shared.RespondWithError(w, r, http.StatusBadRequest, "PIN confirmation required")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.statusResponse())
}

func (h *AccessHandler) statusResponse() AccessStatusResponse {
	settings := h.gate.Settings()
	return AccessStatusResponse{
		PINEnabled:       settings.PINEnabled,
		ParentModeActive: settings.ParentModeActive,
		Unlocked:         h.gate.Unlocked(),
	}
}

func (h *AccessHandler) respondError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "operation", operation, "error", err)
	} else {
		h.logger.Debug("request rejected", "operation", operation, "error", err)
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}
