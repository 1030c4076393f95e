package handler

import (
	"net/http"

	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/core"
)

type PortalSession struct {
	billing *core.BillingService
}

func NewPortalSession(billing *core.BillingService) *PortalSession {
	return &PortalSession{billing: billing}
}

// Create mints a one-shot provider portal session for the caller.
func (h *PortalSession) Create(w http.ResponseWriter, r *http.Request) {
	_, customerID, ok := requireSession(w, r)
	if !ok {
		return
	}

	session, err := h.billing.CreatePortalSession(r.Context(), customerID)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"portal_session": session,
		"requestId":      requestID(r),
	})
}
