package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/homeward-labs/docintel/internal/common"
)

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondData(w http.ResponseWriter, data any, message string) {
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondErrorData(w, r, err, nil)
}

// respondErrorData is respondError with a partial-result payload for handlers
// that completed some work before the failure.
func (s *Server) respondErrorData(w http.ResponseWriter, r *http.Request, err error, data any) {
	status := statusForError(err)
	msg := err.Error()
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	s.logger.Error("request failed",
		"req_id", common.RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	s.writeJSON(w, status, envelope{Success: false, Data: data, Message: msg})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, common.ErrRemoteTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, common.ErrRemoteAuth):
		return http.StatusBadGateway
	case errors.Is(err, common.ErrRemoteService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
