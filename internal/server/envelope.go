package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"clipvault/internal/logging"
	"clipvault/internal/services"
)

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeData(w http.ResponseWriter, status int, data any) {
	s.writeJSON(w, status, envelope{Success: true, Data: data})
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, envelope{Success: status < 400, Error: message})
}

// writeError maps the service-layer error taxonomy onto HTTP statuses and
// surfaces only the user-facing message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}
	message := services.UserMessage(err, "internal server error")
	if status >= 500 {
		s.logger.Error("request failed", logging.Error(err))
	}
	s.writeJSON(w, status, envelope{Success: false, Error: message})
}
