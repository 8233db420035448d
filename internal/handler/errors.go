package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"postboard/internal/repository"
	"postboard/internal/service"
)

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError - failure envelope without data
func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, Response{Success: false, Message: message})
}

func writeSuccess(w http.ResponseWriter, message string, data any, statusCode int) {
	writeJSON(w, statusCode, Response{Success: true, Message: message, Data: data})
}

// mapServiceError translates service and repository errors into HTTP
// responses. Anything unknown is logged and reported as a 500.
func mapServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		writeError(w, "Post not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicateTitle):
		writeError(w, "A post with this title already exists", http.StatusBadRequest)
	case errors.Is(err, service.ErrNotImage):
		writeError(w, "Only image files are allowed", http.StatusBadRequest)
	case errors.Is(err, service.ErrUnrecognizedType):
		writeError(w, "Invalid file type", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidFilename):
		writeError(w, "Invalid file name", http.StatusBadRequest)
	case errors.As(err, &maxBytesErr):
		writeError(w, "File exceeds maximum allowed size", http.StatusRequestEntityTooLarge)
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, "An internal error occurred", http.StatusInternalServerError)
	}
}
