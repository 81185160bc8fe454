package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/toeirei/sgpi/internal/db"
	"github.com/toeirei/sgpi/internal/i18n"
	"github.com/toeirei/sgpi/internal/logging"
	"github.com/toeirei/sgpi/internal/model"
)

type userPayload struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Level    string `json:"level"`
}

// handleListUsers answers GET /api/users. Passwords never leave the store.
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}

	out := make([]userPayload, 0, len(users))
	for _, u := range users {
		out = append(out, userPayload{ID: u.ID, Username: u.Username, Level: string(u.Level)})
	}
	writeJSON(w, http.StatusOK, out)
}

type addUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Level    string `json:"level"`
}

// handleAddUser creates an account. Duplicate usernames answer 409.
func (h *Handler) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, i18n.T("server.bad_request"), err)
		return
	}

	level := model.PrivilegeLevel(req.Level)
	if !level.Valid() {
		writeError(w, http.StatusBadRequest, i18n.T("users.invalid_level"), nil)
		return
	}

	if err := h.store.AddUser(req.Username, req.Password, level); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			writeError(w, http.StatusConflict, i18n.T("users.duplicate"), nil)
			return
		}
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}

	logging.Infof("web: user %s created (%s)", req.Username, level)
	writeJSON(w, http.StatusCreated, userPayload{Username: req.Username, Level: req.Level})
}

// handleDeleteUser removes the account with the path id. Unknown ids are a
// no-op and still answer 204.
func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, i18n.T("server.bad_request"), err)
		return
	}

	if err := h.store.DeleteUser(id); err != nil {
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
