package handler

import "net/http"

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type meResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Me echoes the authenticated caller.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: caller.ID, Role: string(caller.Role)})
}
