package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/alloy/internal/api/request"
	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/core"
)

type Entitlement struct {
	billing *core.BillingService
}

func NewEntitlement(billing *core.BillingService) *Entitlement {
	return &Entitlement{billing: billing}
}

// ListBySubscription returns the entitlements a subscription grants, always
// fetched fresh from the provider.
func (h *Entitlement) ListBySubscription(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := requireSession(w, r); !ok {
		return
	}

	subscriptionID, err := request.RequireID(chi.URLParam(r, "subscriptionId"))
	if err != nil {
		response.WriteError(w, r, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	entitlements, err := h.billing.ListEntitlements(r.Context(), subscriptionID)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"subscription_id": subscriptionID,
		"entitlements":    entitlements,
		"requestId":       requestID(r),
	})
}
