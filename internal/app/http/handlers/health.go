package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Telegram bool   `json:"telegram"`
	Jobs     bool   `json:"jobs"`
}

// Health reports liveness and which optional collaborators are wired.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Database: h.quotes != nil,
		Telegram: h.sender != nil,
		Jobs:     h.jobs != nil,
	})
}
