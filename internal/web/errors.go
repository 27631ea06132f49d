package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vbonduro/imagestore/internal/domain"
)

const (
	msgUnauthorized = "Unauthorized"
	msgNotFound     = "Not Found"
	msgInvalidImage = "Invalid image data"
	msgInternal     = "Internal Server Error"
	msgInvalidBody  = "invalid request body"
	msgBodyTooLarge = "request body too large"
)

type errorResponse struct {
	Error string `json:"error"`
}

type fieldMessage struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type validationResponse struct {
	Messages []fieldMessage `json:"messages"`
}

// handleError maps a service error to its HTTP response. Storage and format
// failures are logged but their detail never reaches the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Messages: []fieldMessage{{Path: verr.Path, Message: verr.Message}},
		})
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, domain.ErrFormat):
		s.logger.Error("image decode failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInvalidImage)
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
