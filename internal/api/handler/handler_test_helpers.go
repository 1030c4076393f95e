package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "github.com/edvin/alloy/internal/api/middleware"
	"github.com/edvin/alloy/internal/chargebee"
	"github.com/edvin/alloy/internal/model"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return withRequestID(r)
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return withRequestID(r)
}

// withRequestID seeds the correlation id the Correlation middleware would
// normally assign.
func withRequestID(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), chimw.RequestIDKey, "test-request-id")
	return r.WithContext(ctx)
}

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withSession injects a validated session into the request context.
func withSession(r *http.Request, sub, email string) *http.Request {
	now := time.Now()
	claims := &model.SessionClaims{
		Sub:   sub,
		Email: email,
		Iat:   now.Unix(),
		Exp:   now.Add(time.Hour).Unix(),
		Iss:   "test",
	}
	ctx := context.WithValue(r.Context(), mw.ClaimsKey, claims)
	return r.WithContext(ctx)
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// decodeBody parses an arbitrary JSON response body into a map.
func decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

const testSub = "google-sub-123"
const testCustomerID = "alloy_google-sub-123"

// fakeProvider implements core.ProviderClient for handler tests.
type fakeProvider struct {
	customers     map[string]*chargebee.Customer
	subscriptions []chargebee.Subscription
	entitlements  []chargebee.Entitlement

	createCalls []chargebee.CreateCustomerParams
	failWith    error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{customers: map[string]*chargebee.Customer{}}
}

func (f *fakeProvider) GetCustomer(_ context.Context, customerID string) (*chargebee.Customer, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.customers[customerID], nil
}

func (f *fakeProvider) CreateCustomer(_ context.Context, params chargebee.CreateCustomerParams) (*chargebee.Customer, error) {
	f.createCalls = append(f.createCalls, params)
	if f.failWith != nil {
		return nil, f.failWith
	}
	customer := &chargebee.Customer{ID: params.ID, Email: params.Email, BusinessEntityID: params.BusinessEntityID}
	f.customers[params.ID] = customer
	return customer, nil
}

func (f *fakeProvider) ListSubscriptionsByCustomer(_ context.Context, _ string) ([]chargebee.Subscription, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.subscriptions, nil
}

func (f *fakeProvider) ListSubscriptionEntitlements(_ context.Context, _ string) ([]chargebee.Entitlement, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.entitlements, nil
}

func (f *fakeProvider) CreatePortalSession(_ context.Context, customerID string) (*chargebee.PortalSession, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &chargebee.PortalSession{ID: "ps1", CustomerID: customerID}, nil
}

func (f *fakeProvider) CreatePricingPageSessionForNewSubscription(_ context.Context, params chargebee.NewSubscriptionSessionParams) (*chargebee.PricingPageSession, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &chargebee.PricingPageSession{ID: "new:" + params.PricingPageID}, nil
}

func (f *fakeProvider) CreatePricingPageSessionForExistingSubscription(_ context.Context, params chargebee.ExistingSubscriptionSessionParams) (*chargebee.PricingPageSession, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &chargebee.PricingPageSession{ID: "existing:" + params.SubscriptionID}, nil
}
