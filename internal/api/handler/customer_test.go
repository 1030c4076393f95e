package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/alloy/internal/chargebee"
	"github.com/edvin/alloy/internal/core"
)

func newCustomerHandler(provider *fakeProvider) *Customer {
	return NewCustomer(core.NewBillingService(provider))
}

func TestCustomerGet_Unauthenticated(t *testing.T) {
	h := newCustomerHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/customer", nil)

	h.Get(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "unauthorized", body["error"])
}

func TestCustomerGet_NotProvisioned(t *testing.T) {
	h := newCustomerHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodGet, "/customer", nil), testSub, "a@b.c")

	h.Get(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, false, body["exists"])
	assert.Equal(t, testCustomerID, body["customer_id"])
	assert.Nil(t, body["customer"])
	assert.NotEmpty(t, body["requestId"])
}

func TestCustomerGet_Exists(t *testing.T) {
	provider := newFakeProvider()
	provider.customers[testCustomerID] = &chargebee.Customer{
		ID:               testCustomerID,
		Email:            "a@b.c",
		BusinessEntityID: "AzyeBNVANOcnj1ND2",
	}
	h := newCustomerHandler(provider)
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodGet, "/customer", nil), testSub, "a@b.c")

	h.Get(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, true, body["exists"])
	assert.Equal(t, "AzyeBNVANOcnj1ND2", body["business_entity_id"])
}

func TestCustomerGet_ProviderFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.failWith = &chargebee.APIError{Operation: "get customer", Status: 500, Body: "boom"}
	h := newCustomerHandler(provider)
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodGet, "/customer", nil), testSub, "a@b.c")

	h.Get(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "provider_error", body["error"])
	assert.Contains(t, body["message"], "status 500")
}

func TestCustomerCreate_InvalidJSON(t *testing.T) {
	h := newCustomerHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := withSession(newRequestRaw(http.MethodPost, "/customer", "{bad json"), testSub, "a@b.c")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "invalid_payload", body["error"])
}

func TestCustomerCreate_MissingRegion(t *testing.T) {
	h := newCustomerHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodPost, "/customer", map[string]any{}), testSub, "a@b.c")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "invalid_payload", body["error"])
}

func TestCustomerCreate_Success(t *testing.T) {
	provider := newFakeProvider()
	h := newCustomerHandler(provider)
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodPost, "/customer", map[string]any{"region": "us"}), testSub, "a@b.c")

	h.Create(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, true, body["created"])
	assert.Equal(t, testCustomerID, body["customer_id"])
	assert.Equal(t, "AzyeBNVANOcnj1ND2", body["business_entity_id"])
	assert.Equal(t, "us", body["region"])

	// Email falls back to the session when the body omits it.
	require.Len(t, provider.createCalls, 1)
	assert.Equal(t, "a@b.c", provider.createCalls[0].Email)
}

func TestCustomerCreate_Conflict(t *testing.T) {
	provider := newFakeProvider()
	provider.customers[testCustomerID] = &chargebee.Customer{ID: testCustomerID, BusinessEntityID: "EU"}
	h := newCustomerHandler(provider)
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodPost, "/customer", map[string]any{"region": "us"}), testSub, "a@b.c")

	h.Create(rec, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "customer_already_exists", body["error"])
	assert.Empty(t, provider.createCalls)
	assert.Equal(t, "EU", provider.customers[testCustomerID].BusinessEntityID)
}
