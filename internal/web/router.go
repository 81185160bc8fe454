package web

import (
	"net/http"

	"github.com/toeirei/sgpi/internal/db"
)

// Handler bundles the store and the operations the API dispatches to. The
// import and backup operations are injected so handler tests can run without
// spreadsheets or dump utilities.
type Handler struct {
	store    db.Store
	sessions *SessionManager
	importFn func(db.Store, string) (int, error)
	backupFn func() (string, error)
}

// NewHandler wires a Handler for the given store and operations.
func NewHandler(store db.Store, importFn func(db.Store, string) (int, error), backupFn func() (string, error)) *Handler {
	return &Handler{
		store:    store,
		sessions: NewSessionManager(0),
		importFn: importFn,
		backupFn: backupFn,
	}
}

// Router returns the API routes with auth middleware applied. Room operations
// are open to any signed-in level; user management and backup are admin-only.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/logout", h.handleLogout)

	mux.HandleFunc("GET /api/dashboard", h.requireSession(h.handleDashboard))
	mux.HandleFunc("GET /api/rooms", h.requireSession(h.handleSearchRooms))
	mux.HandleFunc("POST /api/rooms", h.requireSession(h.handleInsertRoom))
	mux.HandleFunc("POST /api/rooms/import", h.requireSession(h.handleImportRooms))

	mux.HandleFunc("GET /api/users", h.requireAdmin(h.handleListUsers))
	mux.HandleFunc("POST /api/users", h.requireAdmin(h.handleAddUser))
	mux.HandleFunc("DELETE /api/users/{id}", h.requireAdmin(h.handleDeleteUser))

	mux.HandleFunc("POST /api/backup", h.requireAdmin(h.handleBackup))

	return logRequests(mux)
}
