package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Messages holds the client-facing text a route returns for each error class.
// Underlying error details are logged, never sent.
type Messages struct {
	BadRequest string
	NotFound   string
	Internal   string
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends {"error": message} with the given status
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// StatusFor maps a service error onto an HTTP status
func StatusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the status and message for err, returning the status
func FromError(w http.ResponseWriter, err error, msgs Messages) int {
	status := StatusFor(err)
	switch status {
	case http.StatusBadRequest:
		Error(w, status, msgs.BadRequest)
	case http.StatusNotFound:
		Error(w, status, msgs.NotFound)
	default:
		Error(w, status, msgs.Internal)
	}
	return status
}
