package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/folem-api/internal/api/shared"
	"github.com/phrazzld/folem-api/internal/domain"
	"github.com/phrazzld/folem-api/internal/service"
)

// maxImportBytes caps the size of an import request body. The profile
// document itself is bounded by the custom-symbol image cap.
const maxImportBytes = 8 * 1024 * 1024

// CreateProfileRequest represents the request body for creating a profile.
type CreateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// AddFavoriteRequest represents the request body for saving a favorite
// sentence from the current symbol selection.
type AddFavoriteRequest struct {
	Symbols domain.SymbolList `json:"symbols"`
}

// AddCustomSymbolRequest represents the request body for creating a
// custom symbol.
type AddCustomSymbolRequest struct {
	Label    string `json:"label" validate:"required,min=1"`
	Emoji    string `json:"emoji"`
	Category string `json:"category" validate:"required,min=1"`
	ImageURL string `json:"image_url"`
}

// SetHiddenSymbolsRequest represents the request body for replacing the
// hidden-symbol set.
type SetHiddenSymbolsRequest struct {
	SymbolIDs []string `json:"symbol_ids"`
}

// RecordAttemptRequest represents the request body for one game-round
// outcome.
type RecordAttemptRequest struct {
	SymbolID string `json:"symbol_id" validate:"required,min=1"`
	Correct  bool   `json:"correct"`
}

// ProfileResponse represents the response data for a profile. Learning
// progress and favorites travel in full; the board renders from this
// one document.
type ProfileResponse struct {
	ID                string                          `json:"id"`
	Name              string                          `json:"name"`
	CreatedAt         time.Time                       `json:"created_at"`
	CustomSymbols     []domain.CustomSymbol           `json:"custom_symbols"`
	FavoriteSentences []domain.FavoriteSentence       `json:"favorite_sentences"`
	LearningProgress  map[string]domain.LearningScore `json:"learning_progress"`
	HiddenSymbols     []string                        `json:"hidden_symbols"`
	VisualSettings    domain.VisualSettings           `json:"visual_settings"`
	Speech            domain.SpeechSettings           `json:"speech"`
}

// ProfileHandler handles profile-related HTTP requests.
type ProfileHandler struct {
	profileService *service.ProfileService
	catalog        []domain.CatalogSymbol
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler. The catalog is the
// built-in symbol set the board ships with.
func NewProfileHandler(
	profileService *service.ProfileService,
	catalog []domain.CatalogSymbol,
	logger *slog.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		catalog:        catalog,
		logger:         logger.With(slog.String("component", "profile_handler")),
	}
}

// ListProfiles handles GET /api/profiles requests.
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.Profiles(r.Context())
	if err != nil {
		h.respondError(w, r, "list profiles", err)
		return
	}
	responses := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = profileToResponse(&profiles[i])
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// CreateProfile handles POST /api/profiles requests.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, err := h.profileService.Create(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, r, "create profile", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, profileToResponse(profile))
}

// GetActiveProfile handles GET /api/profiles/active requests.
func (h *ProfileHandler) GetActiveProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.ActiveProfile(r.Context())
	if err != nil {
		h.respondError(w, r, "get active profile", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// GetProfile handles GET /api/profiles/{id} requests.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, "get profile", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// UpdateProfile handles PUT /api/profiles/{id} requests with a partial
// mutation.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileUpdate
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := h.profileService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, r, "update profile", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// DeleteProfile handles DELETE /api/profiles/{id} requests.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.profileService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, "delete profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectProfile handles POST /api/profiles/{id}/select requests.
func (h *ProfileHandler) SelectProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.profileService.Select(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, "select profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportProfile handles GET /api/profiles/{id}/export requests. The
// response body is the canonical exchange document.
func (h *ProfileHandler) ExportProfile(w http.ResponseWriter, r *http.Request) {
	data, err := h.profileService.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, "export profile", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write export response", "error", err)
	}
}

// ImportProfile handles POST /api/profiles/import requests. The request
// body is an exchange document produced by export.
func (h *ProfileHandler) ImportProfile(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Could not read import document")
		return
	}

	profile, err := h.profileService.Import(r.Context(), raw)
	if err != nil {
		h.respondError(w, r, "import profile", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, profileToResponse(profile))
}

// AddFavorite handles POST /api/favorites requests.
func (h *ProfileHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req AddFavoriteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	favorite, err := h.profileService.AddFavorite(r.Context(), req.Symbols)
	if err != nil {
		h.respondError(w, r, "add favorite", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, favorite)
}

// DeleteFavorite handles DELETE /api/favorites/{id} requests.
func (h *ProfileHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.profileService.DeleteFavorite(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, "delete favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCustomSymbol handles POST /api/symbols/custom requests.
func (h *ProfileHandler) AddCustomSymbol(w http.ResponseWriter, r *http.Request) {
	var req AddCustomSymbolRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	symbol, err := h.profileService.AddCustomSymbol(r.Context(), domain.CustomSymbol{
		Label:    req.Label,
		Emoji:    req.Emoji,
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.respondError(w, r, "add custom symbol", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, symbol)
}

// RemoveCustomSymbol handles DELETE /api/symbols/custom/{id} requests.
func (h *ProfileHandler) RemoveCustomSymbol(w http.ResponseWriter, r *http.Request) {
	if err := h.profileService.RemoveCustomSymbol(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, "remove custom symbol", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVisibleSymbols handles GET /api/symbols requests. An optional
// category query parameter restricts the result.
func (h *ProfileHandler) ListVisibleSymbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.profileService.VisibleSymbols(r.Context(), h.catalog, r.URL.Query().Get("category"))
	if err != nil {
		h.respondError(w, r, "list symbols", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, domain.SymbolList(symbols))
}

// SetHiddenSymbols handles PUT /api/symbols/hidden requests.
func (h *ProfileHandler) SetHiddenSymbols(w http.ResponseWriter, r *http.Request) {
	var req SetHiddenSymbolsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.profileService.SetHiddenSymbols(r.Context(), req.SymbolIDs); err != nil {
		h.respondError(w, r, "set hidden symbols", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetVisualSettings handles PUT /api/settings/visual requests.
func (h *ProfileHandler) SetVisualSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.VisualSettings
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.profileService.SetVisualSettings(r.Context(), req); err != nil {
		h.respondError(w, r, "set visual settings", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSpeechSettings handles PUT /api/settings/speech requests.
func (h *ProfileHandler) SetSpeechSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.SpeechSettings
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.profileService.SetSpeechSettings(r.Context(), req); err != nil {
		h.respondError(w, r, "set speech settings", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordAttempt handles POST /api/attempts requests with one game-round
// outcome.
func (h *ProfileHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req RecordAttemptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	score, err := h.profileService.RecordAttempt(r.Context(), req.SymbolID, req.Correct)
	if err != nil {
		h.respondError(w, r, "record attempt", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, score)
}

// GetProgressSummary handles GET /api/progress requests.
func (h *ProfileHandler) GetProgressSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.profileService.ProgressSummary(r.Context())
	if err != nil {
		h.respondError(w, r, "progress summary", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

func (h *ProfileHandler) respondError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "operation", operation, "error", err)
	} else {
		h.logger.Debug("request rejected", "operation", operation, "error", err)
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

// profileToResponse converts a domain.Profile to a ProfileResponse.
// Cloud sync fields stay internal.
func profileToResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                profile.ID,
		Name:              profile.Name,
		CreatedAt:         profile.CreatedAt,
		CustomSymbols:     profile.CustomSymbols,
		FavoriteSentences: profile.FavoriteSentences,
		LearningProgress:  profile.LearningProgress,
		HiddenSymbols:     profile.HiddenSymbols,
		VisualSettings:    profile.VisualSettings,
		Speech:            profile.Speech,
	}
}
