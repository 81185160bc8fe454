// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package web serves the SGPI HTTP API: login, room management, user
// management, bulk import and backup. Sessions are process-local; restarting
// the server signs everyone out.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/toeirei/sgpi/internal/model"
)

// sessionCookie is the cookie carrying the session token. The token is also
// accepted via the X-Session-Token header for non-browser clients.
const sessionCookie = "sgpi_session"

// defaultSessionTTL bounds how long an idle login stays valid.
const defaultSessionTTL = 12 * time.Hour

// Session is the resolved identity for one logged-in client.
type Session struct {
	Token     string
	Username  string
	Level     model.PrivilegeLevel
	ExpiresAt time.Time
}

// SessionManager holds active sessions in memory, keyed by opaque token.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	nowFunc  func() time.Time
}

// NewSessionManager returns a manager with the given TTL; zero means the default.
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionManager{
		ttl:      ttl,
		sessions: make(map[string]Session),
		nowFunc:  time.Now,
	}
}

// Create issues a new session for the given user.
func (m *SessionManager) Create(username string, level model.PrivilegeLevel) Session {
	s := Session{
		Token:     uuid.NewString(),
		Username:  username,
		Level:     level,
		ExpiresAt: m.nowFunc().Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

// Lookup resolves a token to its session. Expired sessions are dropped on access.
func (m *SessionManager) Lookup(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return Session{}, false
	}
	if m.nowFunc().After(s.ExpiresAt) {
		delete(m.sessions, token)
		return Session{}, false
	}
	return s, true
}

// Revoke removes a session. Revoking an unknown token is a no-op.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// extractToken pulls the session token from the cookie or header.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get("X-Session-Token")
}

func setSessionCookie(w http.ResponseWriter, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
