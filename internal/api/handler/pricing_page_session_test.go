package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/alloy/internal/core"
)

func newPricingHandler(provider *fakeProvider) *PricingPageSession {
	return NewPricingPageSession(core.NewBillingService(provider))
}

func TestPricingPageSession_MissingPageID(t *testing.T) {
	h := newPricingHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodPost, "/pricing-page-session", map[string]any{}), testSub, "a@b.c")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "missing_required_field", body["error"])
}

func TestPricingPageSession_ExplicitPageID(t *testing.T) {
	h := newPricingHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodPost, "/pricing-page-session", map[string]any{
		"pricing_page_id": "pp1",
	}), testSub, "a@b.c")

	h.Create(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, "new_subscription", body["mode"])
	assert.Equal(t, testCustomerID, body["customer_id"])

	session := body["pricing_page_session"].(map[string]any)
	assert.Equal(t, "new:pp1", session["id"])
}

func TestPricingPageSession_ResolvedFromCatalog(t *testing.T) {
	h := newPricingHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodPost, "/pricing-page-session", map[string]any{
		"product": "jira",
		"region":  "us",
	}), testSub, "a@b.c")

	h.Create(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)
	session := body["pricing_page_session"].(map[string]any)
	assert.Equal(t, "new:01KGMZ5GR7A05EXMCD2F36TC0M", session["id"])
}

func TestPricingPageSession_UnknownProductIsMissingField(t *testing.T) {
	h := newPricingHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodPost, "/pricing-page-session", map[string]any{
		"product": "nonexistent",
		"region":  "us",
	}), testSub, "a@b.c")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "missing_required_field", body["error"])
}

func TestPricingPageSession_ExistingSubscription(t *testing.T) {
	h := newPricingHandler(newFakeProvider())
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodPost, "/pricing-page-session", map[string]any{
		"pricing_page_id": "pp1",
		"subscription_id": "sub1",
	}), testSub, "a@b.c")

	h.Create(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, "existing_subscription", body["mode"])

	session := body["pricing_page_session"].(map[string]any)
	assert.Equal(t, "existing:sub1", session["id"])
}
