package handler

import (
	"net/http"

	"github.com/edvin/alloy/internal/api/request"
	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/core"
)

type Auth struct {
	auth *core.AuthService
}

func NewAuth(auth *core.AuthService) *Auth {
	return &Auth{auth: auth}
}

type devTokenRequest struct {
	Sub   string `json:"sub" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// DevToken mints a session token for local development. The route is only
// mounted when DEV_MODE is set; sign-in is otherwise handled upstream.
func (h *Auth) DevToken(w http.ResponseWriter, r *http.Request) {
	var req devTokenRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, r, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	token, err := h.auth.IssueToken(req.Sub, req.Email)
	if err != nil {
		response.WriteError(w, r, http.StatusInternalServerError, response.ErrInternal, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"token":       token,
		"customer_id": core.CustomerIDForSubject(req.Sub),
		"requestId":   requestID(r),
	})
}
