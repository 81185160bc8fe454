package web

import (
	"net/http"
	"time"

	"github.com/toeirei/sgpi/internal/i18n"
	"github.com/toeirei/sgpi/internal/logging"
	"github.com/toeirei/sgpi/internal/model"
)

// requireSession resolves the session token and passes the session to the
// wrapped handler through the request context. Unauthenticated requests get
// a 401 with a localized message.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, i18n.T("session.missing"), nil)
			return
		}
		s, ok := h.sessions.Lookup(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, i18n.T("session.missing"), nil)
			return
		}
		next(w, r.WithContext(ContextWithSession(r.Context(), s)))
	}
}

// requireAdmin additionally rejects sessions below the admin level.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return h.requireSession(func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromContext(r.Context())
		if s.Level != model.LevelAdmin {
			writeError(w, http.StatusForbidden, i18n.T("session.admin_required"), nil)
			return
		}
		next(w, r)
	})
}

// logRequests is the outermost middleware; one line per completed request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debugf("web: %s %s in %s", r.Method, r.URL.Path, time.Since(start))
	})
}
