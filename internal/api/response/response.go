package response

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Error tags surfaced to the dashboard client.
const (
	ErrUnauthorized         = "unauthorized"
	ErrInvalidPayload       = "invalid_payload"
	ErrCustomerNotFound     = "customer_not_found"
	ErrCustomerExists       = "customer_already_exists"
	ErrProvider             = "provider_error"
	ErrMissingRequiredField = "missing_required_field"
	ErrInternal             = "internal_error"
)

// ErrorResponse is the shape of every error body.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"requestId"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes a tagged error body carrying the request correlation id
// so users can report a specific failed interaction.
func WriteError(w http.ResponseWriter, r *http.Request, status int, tag, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error:     tag,
		Message:   message,
		RequestID: chimw.GetReqID(r.Context()),
	})
}
