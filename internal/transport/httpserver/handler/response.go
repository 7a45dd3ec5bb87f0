package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/errs"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// readOnlyFields are accepted in request bodies so clients can send back what
// they received, but their values are never read.
type readOnlyFields struct {
	ID           json.RawMessage `json:"id,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
	CreatedBy    json.RawMessage `json:"created_by,omitempty"`
	CategoryName json.RawMessage `json:"category_name,omitempty"`
	CreatedAt    json.RawMessage `json:"created_at,omitempty"`
	UpdatedAt    json.RawMessage `json:"updated_at,omitempty"`
}

func (h *Handlers) caller(w http.ResponseWriter, r *http.Request) (access.Caller, bool) {
	caller, ok := access.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return access.Caller{}, false
	}
	return caller, true
}

// writeDomainError classifies err against the shared taxonomy. Client-caused
// failures are logged as business errors; anything else is internal.
func (h *Handlers) writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	log := h.log.WithContext(r.Context())

	var status int
	var code string
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		status, code = http.StatusUnauthorized, "invalid_token"
	case errors.Is(err, errs.ErrPermissionDenied):
		status, code = http.StatusForbidden, "permission_denied"
	case errors.Is(err, errs.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrBadRequest):
		status, code = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, errs.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, errs.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	default:
		log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	log.BusinessError(op+": "+code, err, args...)
	writeError(w, status, code, err.Error())
}

func invalidJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
}
