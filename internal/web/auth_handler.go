package web

import (
	"encoding/json"
	"net/http"

	"github.com/toeirei/sgpi/internal/i18n"
	"github.com/toeirei/sgpi/internal/logging"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Level string `json:"level"`
}

// handleLogin checks the credentials and issues a session token. Failed logins
// answer 401 with a localized message; this is the one backend error the
// original surfaced gracefully.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, i18n.T("server.bad_request"), err)
		return
	}

	level, ok, err := h.store.CheckLogin(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, i18n.T("login.invalid_credentials"), nil)
		return
	}

	s := h.sessions.Create(req.Username, level)
	setSessionCookie(w, s)
	w.Header().Set("X-Session-Token", s.Token)

	logging.Infof("web: user %s logged in (%s)", req.Username, level)
	writeJSON(w, http.StatusOK, loginResponse{Token: s.Token, Level: string(level)})
}

// handleLogout revokes the current session, if any.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := extractToken(r); token != "" {
		h.sessions.Revoke(token)
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusNoContent, nil)
}
