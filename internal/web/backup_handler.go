package web

import (
	"net/http"

	"github.com/toeirei/sgpi/internal/i18n"
	"github.com/toeirei/sgpi/internal/logging"
)

type backupResponse struct {
	Path string `json:"path"`
}

// handleBackup produces a backup artifact. Clients get a localized message on
// failure; the cause goes to the server log only.
func (h *Handler) handleBackup(w http.ResponseWriter, r *http.Request) {
	path, err := h.backupFn()
	if err != nil {
		writeError(w, http.StatusBadGateway, i18n.T("backup.failed"), err)
		return
	}

	logging.Infof("web: backup written to %s", path)
	writeJSON(w, http.StatusOK, backupResponse{Path: path})
}
