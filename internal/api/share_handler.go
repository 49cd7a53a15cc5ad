package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/folem-api/internal/api/shared"
	"github.com/phrazzld/folem-api/internal/service"
	"github.com/phrazzld/folem-api/internal/share"
)

// ImportByCodeRequest represents the request body for redeeming a share
// code.
type ImportByCodeRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// ShareResponse represents a freshly minted share code. The profile
// snapshot itself stays on the device.
type ShareResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ShareHandler handles share-code HTTP requests.
type ShareHandler struct {
	shareService   *share.Service
	profileService *service.ProfileService
	logger         *slog.Logger
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(
	shareService *share.Service,
	profileService *service.ProfileService,
	logger *slog.Logger,
) *ShareHandler {
	return &ShareHandler{
		shareService:   shareService,
		profileService: profileService,
		logger:         logger.With(slog.String("component", "share_handler")),
	}
}

// CreateShare handles POST /api/profiles/{id}/share requests.
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	minted, err := h.shareService.Generate(*profile)
	if err != nil {
		h.logger.Error("failed to mint share code", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Could not create share code")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ShareResponse{
		ID:        minted.ID,
		Code:      minted.Code,
		ExpiresAt: minted.ExpiresAt,
	})
}

// ImportByCode handles POST /api/profiles/import-by-code requests.
// Redemption needs a relay between devices, which does not exist yet,
// so this always reports 501.
func (h *ShareHandler) ImportByCode(w http.ResponseWriter, r *http.Request) {
	var req ImportByCodeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, err := h.shareService.ImportByCode(req.Code)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, profile)
}
