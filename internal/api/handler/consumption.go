package handler

import (
	"net/http"

	"github.com/edvin/alloy/internal/api/request"
	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/consumption"
)

type Consumption struct {
	store consumption.Store
}

func NewConsumption(store consumption.Store) *Consumption {
	return &Consumption{store: store}
}

type bulkGetRequest struct {
	SubscriptionID string   `json:"subscriptionId" validate:"required"`
	FeatureIDs     []string `json:"featureIds" validate:"required,min=1"`
}

// BulkGet reads the caller's counters for a set of features, 0 for any
// feature never incremented.
func (h *Consumption) BulkGet(w http.ResponseWriter, r *http.Request) {
	_, customerID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req bulkGetRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, r, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	items, err := h.store.BulkGet(r.Context(), consumption.BulkGetParams{
		CustomerID:     customerID,
		SubscriptionID: req.SubscriptionID,
		FeatureIDs:     req.FeatureIDs,
	})
	if err != nil {
		response.WriteError(w, r, http.StatusInternalServerError, response.ErrInternal, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"subscriptionId": req.SubscriptionID,
		"items":          items,
		"requestId":      requestID(r),
	})
}

type incrementRequest struct {
	SubscriptionID string `json:"subscriptionId" validate:"required"`
	FeatureID      string `json:"featureId" validate:"required"`
	Delta          *int64 `json:"delta"`
}

// Increment adjusts one counter by a signed delta, defaulting to 1 when the
// delta is omitted. The result never goes below zero.
func (h *Consumption) Increment(w http.ResponseWriter, r *http.Request) {
	_, customerID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req incrementRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, r, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	delta := int64(1)
	if req.Delta != nil {
		delta = *req.Delta
	}

	item, err := h.store.Increment(r.Context(), consumption.IncrementParams{
		CustomerID:     customerID,
		SubscriptionID: req.SubscriptionID,
		FeatureID:      req.FeatureID,
		Delta:          delta,
	})
	if err != nil {
		response.WriteError(w, r, http.StatusInternalServerError, response.ErrInternal, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"subscriptionId": req.SubscriptionID,
		"item":           item,
		"requestId":      requestID(r),
	})
}
