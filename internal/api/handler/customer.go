package handler

import (
	"errors"
	"net/http"

	"github.com/edvin/alloy/internal/api/request"
	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/core"
	"github.com/edvin/alloy/internal/model"
)

type Customer struct {
	billing *core.BillingService
}

func NewCustomer(billing *core.BillingService) *Customer {
	return &Customer{billing: billing}
}

// Get reports whether a billing customer exists for the caller's account.
func (h *Customer) Get(w http.ResponseWriter, r *http.Request) {
	_, customerID, ok := requireSession(w, r)
	if !ok {
		return
	}

	customer, err := h.billing.GetCustomer(r.Context(), customerID)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	businessEntityID := ""
	if customer != nil {
		businessEntityID = customer.BusinessEntityID
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"exists":             customer != nil,
		"customer_id":        customerID,
		"business_entity_id": businessEntityID,
		"customer":           customer,
		"requestId":          requestID(r),
	})
}

type createCustomerRequest struct {
	Region string `json:"region" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// Create provisions a billing customer for the caller's account. The region
// is fixed at creation; a second create conflicts instead of updating.
func (h *Customer) Create(w http.ResponseWriter, r *http.Request) {
	claims, customerID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req createCustomerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, r, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	email := req.Email
	if email == "" {
		email = claims.Email
	}

	customer, err := h.billing.ProvisionCustomer(r.Context(), customerID, email, req.Region)
	if errors.Is(err, core.ErrCustomerExists) {
		response.WriteError(w, r, http.StatusConflict, response.ErrCustomerExists, "customer already exists; region cannot be changed")
		return
	}
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"created":            true,
		"customer_id":        customerID,
		"business_entity_id": customer.BusinessEntityID,
		"region":             model.RegionFromBusinessEntityID(customer.BusinessEntityID),
		"customer":           customer,
		"requestId":          requestID(r),
	})
}
