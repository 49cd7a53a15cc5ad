package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/folem-api/internal/api"
	apimiddleware "github.com/phrazzld/folem-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and
// middleware. Routes that manage profiles or settings sit behind the
// parent-mode guard; board interaction routes stay open to the child.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	profileHandler := api.NewProfileHandler(app.profileService, builtinCatalog, app.logger)
	accessHandler := api.NewAccessHandler(app.gate, app.logger)
	voiceHandler := api.NewVoiceHandler(app.speechManager, app.voiceEmitter, app.logger)
	shareHandler := api.NewShareHandler(app.shareService, app.profileService, app.logger)
	parentMode := apimiddleware.NewParentModeMiddleware(app.gate)

	r.Route("/api", func(r chi.Router) {
		// Board interaction: open to the child.
		r.Get("/symbols", profileHandler.ListVisibleSymbols)
		r.Get("/profiles/active", profileHandler.GetActiveProfile)
		r.Post("/favorites", profileHandler.AddFavorite)
		r.Post("/attempts", profileHandler.RecordAttempt)
		r.Post("/speak", voiceHandler.Speak)
		r.Post("/speak/stop", voiceHandler.StopSpeaking)

		// Parent-mode session.
		r.Get("/access", accessHandler.GetStatus)
		r.Post("/access/unlock", accessHandler.Unlock)
		r.Post("/access/lock", accessHandler.Lock)

		// Platform plumbing from the UI shell.
		r.Get("/voices", voiceHandler.ListVoices)
		r.Put("/voices", voiceHandler.ReportVoices)

		// Caregiver routes.
		r.Group(func(r chi.Router) {
			r.Use(parentMode.RequireParentMode)

			r.Get("/profiles", profileHandler.ListProfiles)
			r.Post("/profiles", profileHandler.CreateProfile)
			r.Post("/profiles/import", profileHandler.ImportProfile)
			r.Post("/profiles/import-by-code", shareHandler.ImportByCode)
			r.Get("/profiles/{id}", profileHandler.GetProfile)
			r.Put("/profiles/{id}", profileHandler.UpdateProfile)
			r.Delete("/profiles/{id}", profileHandler.DeleteProfile)
			r.Post("/profiles/{id}/select", profileHandler.SelectProfile)
			r.Get("/profiles/{id}/export", profileHandler.ExportProfile)
			r.Post("/profiles/{id}/share", shareHandler.CreateShare)

			r.Delete("/favorites/{id}", profileHandler.DeleteFavorite)
			r.Post("/symbols/custom", profileHandler.AddCustomSymbol)
			r.Delete("/symbols/custom/{id}", profileHandler.RemoveCustomSymbol)
			r.Put("/symbols/hidden", profileHandler.SetHiddenSymbols)
			r.Put("/settings/visual", profileHandler.SetVisualSettings)
			r.Put("/settings/speech", profileHandler.SetSpeechSettings)
			r.Get("/progress", profileHandler.GetProgressSummary)
			r.Put("/voices/current", voiceHandler.SelectVoice)

			// The guard passes set-PIN through on first use because
			// protection is still disabled; once a PIN exists the
			// session must be unlocked to replace it.
			r.Post("/access/pin", accessHandler.SetPIN)
			r.Put("/access/pin", accessHandler.ChangePIN)
			r.Delete("/access/pin", accessHandler.DisablePIN)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
