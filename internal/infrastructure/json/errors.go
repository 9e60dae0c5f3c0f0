package json

import (
	"log"
	"net/http"
	"strconv"
)

// ErrorResponse is the envelope for every non-2xx JSON reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteNotFoundError replies 404 with the given message.
func WriteNotFoundError(w http.ResponseWriter, msg string) {
	writeErrorStatus(w, http.StatusNotFound, msg)
}

// WriteValidationError replies 400 with the validation failure as message.
func WriteValidationError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, http.StatusBadRequest, err.Error())
}

// WriteBadRequestError replies 400 with a caller-supplied message.
func WriteBadRequestError(w http.ResponseWriter, msg string) {
	writeErrorStatus(w, http.StatusBadRequest, msg)
}

// WriteInternalError replies 500. The underlying error is logged, never sent
// to the client.
func WriteInternalError(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	writeErrorStatus(w, http.StatusInternalServerError, "An unexpected error occurred")
}

// WriteRateLimitError replies 429, advertising retryAfter seconds when
// positive.
func WriteRateLimitError(w http.ResponseWriter, retryAfter int) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	writeErrorStatus(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}

func writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: msg,
	})
}
