package handler

import (
	"net/http"

	"github.com/edvin/alloy/internal/api/request"
	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/catalog"
	"github.com/edvin/alloy/internal/core"
	"github.com/edvin/alloy/internal/model"
)

type PricingPageSession struct {
	billing *core.BillingService
}

func NewPricingPageSession(billing *core.BillingService) *PricingPageSession {
	return &PricingPageSession{billing: billing}
}

type pricingPageSessionRequest struct {
	PricingPageID    string `json:"pricing_page_id"`
	Product          string `json:"product"`
	Region           string `json:"region"`
	SubscriptionID   string `json:"subscription_id"`
	BusinessEntityID string `json:"business_entity_id"`
}

// Create opens a hosted pricing page session. A non-empty subscription_id
// targets that subscription; otherwise the session checks out a new one.
// The pricing page can be named directly or resolved from product + region.
func (h *PricingPageSession) Create(w http.ResponseWriter, r *http.Request) {
	_, customerID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req pricingPageSessionRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, r, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	pricingPageID := req.PricingPageID
	if pricingPageID == "" && req.Product != "" && req.Region != "" {
		if table, found := catalog.PricingTableFor(model.Region(req.Region), catalog.ProductKey(req.Product)); found {
			pricingPageID = table.PricingPageID
		}
	}
	if pricingPageID == "" {
		response.WriteError(w, r, http.StatusBadRequest, response.ErrMissingRequiredField, "pricing_page_id is required")
		return
	}

	businessEntityID := req.BusinessEntityID
	if businessEntityID == "" && req.Region != "" {
		businessEntityID = model.BusinessEntityID(req.Region)
	}

	mode := "new_subscription"
	if req.SubscriptionID != "" {
		mode = "existing_subscription"
	}

	session, err := h.billing.CreatePricingPageSession(r.Context(), core.PricingPageSessionParams{
		PricingPageID:    pricingPageID,
		BusinessEntityID: businessEntityID,
		SubscriptionID:   req.SubscriptionID,
		CustomerID:       customerID,
	})
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"pricing_page_session": session,
		"customer_id":          customerID,
		"mode":                 mode,
		"requestId":            requestID(r),
	})
}
