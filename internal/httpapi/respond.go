package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

const msgServerConfig = "Server configuration error"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// messages are the client-facing texts for one route.
type messages struct {
	missingID string // ErrInvalidID
	required  string // ErrRequiredField
	notFound  string // ErrNotFound
	failed    string // any store failure
}

// fail maps err onto a response. Validation errors become 400, ErrNotFound
// 404, and everything else 500 with the cause logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, m messages) {
	switch {
	case errors.Is(err, types.ErrInvalidID):
		writeError(w, http.StatusBadRequest, m.missingID)
	case errors.Is(err, types.ErrEmptyPatch):
		writeError(w, http.StatusBadRequest, "No valid fields to update")
	case errors.Is(err, types.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, types.ErrRequiredField):
		writeError(w, http.StatusBadRequest, m.required)
	case errors.Is(err, types.ErrInvalidData):
		writeError(w, http.StatusBadRequest, "Invalid payload")
	case errors.Is(err, types.ErrNotFound):
		writeError(w, http.StatusNotFound, m.notFound)
	case errors.Is(err, types.ErrNotConfigured):
		s.logger.Error(msgServerConfig, zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgServerConfig)
	default:
		s.logger.Error(m.failed, zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, m.failed)
	}
}

// decodeObject reads a JSON object body. Anything else, including invalid
// JSON, yields ok == false.
func decodeObject(r *http.Request) (map[string]json.RawMessage, bool) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		return nil, false
	}
	return body, true
}

// stringField returns the value of key when it is a JSON string. Other
// types are treated as absent.
func stringField(body map[string]json.RawMessage, key string) *string {
	raw, ok := body[key]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}
