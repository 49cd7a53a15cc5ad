package middleware

import (
	"net/http"

	"github.com/phrazzld/folem-api/internal/access"
	"github.com/phrazzld/folem-api/internal/api/shared"
)

// ParentModeMiddleware guards caregiver-only routes behind the PIN
// session gate.
type ParentModeMiddleware struct {
	gate *access.Gate
}

// NewParentModeMiddleware creates a new ParentModeMiddleware.
func NewParentModeMiddleware(gate *access.Gate) *ParentModeMiddleware {
	return &ParentModeMiddleware{gate: gate}
}

// RequireParentMode rejects requests while PIN protection is enabled
// and the parent-mode session is locked or expired. The client unlocks
// through the PIN endpoints and retries.
func (m *ParentModeMiddleware) RequireParentMode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		settings := m.gate.Settings()
		if settings.PINEnabled && !m.gate.Unlocked() {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "PIN required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
