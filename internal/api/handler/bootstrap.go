package handler

import (
	"net/http"

	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/catalog"
	"github.com/edvin/alloy/internal/chargebee"
	"github.com/edvin/alloy/internal/core"
	"github.com/edvin/alloy/internal/model"
)

type Bootstrap struct {
	billing *core.BillingService
}

func NewBootstrap(billing *core.BillingService) *Bootstrap {
	return &Bootstrap{billing: billing}
}

// Get returns everything the dashboard needs for its first render: the
// caller's customer record and all of its subscriptions.
func (h *Bootstrap) Get(w http.ResponseWriter, r *http.Request) {
	_, customerID, ok := requireSession(w, r)
	if !ok {
		return
	}

	customer, err := h.billing.GetCustomer(r.Context(), customerID)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}
	if customer == nil {
		response.WriteError(w, r, http.StatusNotFound, response.ErrCustomerNotFound, "no billing customer for this account")
		return
	}

	subs, err := h.billing.ListSubscriptions(r.Context(), customerID)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"customer_id":        customerID,
		"business_entity_id": customer.BusinessEntityID,
		"region":             model.RegionFromBusinessEntityID(customer.BusinessEntityID),
		"customer":           customer,
		"subscriptions":      subs,
		"products":           productsBySubscription(subs),
		"requestId":          requestID(r),
	})
}

// productsBySubscription maps each subscription id to the products its line
// items belong to, so the dashboard can group cards without re-deriving the
// plan naming convention client-side.
func productsBySubscription(subs []chargebee.Subscription) map[string][]catalog.ProductKey {
	out := make(map[string][]catalog.ProductKey, len(subs))
	for _, sub := range subs {
		products := []catalog.ProductKey{}
		seen := map[catalog.ProductKey]bool{}
		for _, item := range sub.SubscriptionItems {
			if product, ok := catalog.ProductFromItemPriceID(item.ItemPriceID); ok && !seen[product] {
				seen[product] = true
				products = append(products, product)
			}
		}
		out[sub.ID] = products
	}
	return out
}
