package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edvin/alloy/internal/api/middleware"
	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/model"
)

// requireSession extracts session claims and the derived customer id, or
// writes a 401. Auth middleware normally guarantees claims are present.
func requireSession(w http.ResponseWriter, r *http.Request) (*model.SessionClaims, string, bool) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.WriteError(w, r, http.StatusUnauthorized, response.ErrUnauthorized, "missing session")
		return nil, "", false
	}
	return claims, middleware.GetCustomerID(r.Context()), true
}

// writeProviderError surfaces a gateway failure as a 500 provider_error with
// the provider's status and truncated body in the message.
func writeProviderError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("provider call failed")
	response.WriteError(w, r, http.StatusInternalServerError, response.ErrProvider, err.Error())
}

func requestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}
