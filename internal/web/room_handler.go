package web

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/toeirei/sgpi/internal/i18n"
	"github.com/toeirei/sgpi/internal/logging"
	"github.com/toeirei/sgpi/internal/model"
)

type roomPayload struct {
	Owner      string `json:"owner"`
	Floor      string `json:"floor"`
	Room       string `json:"room"`
	Company    string `json:"company"`
	OfficeType string `json:"office_type"`
}

func roomToPayload(r model.Room) roomPayload {
	return roomPayload{
		Owner:      r.Owner,
		Floor:      r.Floor,
		Room:       r.Room,
		Company:    r.Company,
		OfficeType: r.OfficeType,
	}
}

// handleSearchRooms answers GET /api/rooms?q=term. An absent or empty q lists
// every room.
func (h *Handler) handleSearchRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.store.SearchRooms(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}

	out := make([]roomPayload, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, roomToPayload(room))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleInsertRoom appends one room record. No field validation: empty and
// duplicate contents are accepted, as in the registration form.
func (h *Handler) handleInsertRoom(w http.ResponseWriter, r *http.Request) {
	var req roomPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, i18n.T("server.bad_request"), err)
		return
	}

	if err := h.store.InsertRoom(req.Owner, req.Floor, req.Room, req.Company, req.OfficeType); err != nil {
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

type importResponse struct {
	Imported int `json:"imported"`
}

// handleImportRooms accepts a multipart upload (field "file"), spools it to a
// temporary file and runs the bulk importer against it.
func (h *Handler) handleImportRooms(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, i18n.T("server.bad_request"), err)
		return
	}
	defer func() { _ = file.Close() }()

	tmp, err := os.CreateTemp("", "sgpi-import-*.xlsx")
	if err != nil {
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}

	n, err := h.importFn(h.store, tmpPath)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, i18n.T("rooms.import_failed"), err)
		return
	}

	logging.Infof("web: imported %d rooms", n)
	writeJSON(w, http.StatusOK, importResponse{Imported: n})
}

type dashboardResponse struct {
	Username  string `json:"username"`
	Level     string `json:"level"`
	RoomCount int    `json:"room_count"`
}

// handleDashboard returns the signed-in identity and the room total shown in
// the dashboard header.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())

	count, err := h.store.CountRooms()
	if err != nil {
		writeError(w, http.StatusInternalServerError, i18n.T("server.internal_error"), err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		Username:  s.Username,
		Level:     string(s.Level),
		RoomCount: count,
	})
}
