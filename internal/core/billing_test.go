package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/alloy/internal/chargebee"
	"github.com/edvin/alloy/internal/model"
)

func testClaims() model.SessionClaims {
	now := time.Now()
	return model.SessionClaims{
		Sub:   "google-sub-123",
		Email: "a@b.c",
		Iat:   now.Unix(),
		Exp:   now.Add(time.Hour).Unix(),
		Iss:   "alloy-dashboard",
	}
}

// fakeProvider records gateway calls and returns canned values.
type fakeProvider struct {
	customers map[string]*chargebee.Customer

	createCalls       []chargebee.CreateCustomerParams
	entitlementCalls  []string
	entitlements      map[string][]chargebee.Entitlement
	subscriptions     []chargebee.Subscription
	getCustomerErr    error
	createCustomerErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		customers:    map[string]*chargebee.Customer{},
		entitlements: map[string][]chargebee.Entitlement{},
	}
}

func (f *fakeProvider) GetCustomer(_ context.Context, customerID string) (*chargebee.Customer, error) {
	if f.getCustomerErr != nil {
		return nil, f.getCustomerErr
	}
	return f.customers[customerID], nil
}

func (f *fakeProvider) CreateCustomer(_ context.Context, params chargebee.CreateCustomerParams) (*chargebee.Customer, error) {
	f.createCalls = append(f.createCalls, params)
	if f.createCustomerErr != nil {
		return nil, f.createCustomerErr
	}
	customer := &chargebee.Customer{ID: params.ID, Email: params.Email, BusinessEntityID: params.BusinessEntityID}
	f.customers[params.ID] = customer
	return customer, nil
}

func (f *fakeProvider) ListSubscriptionsByCustomer(_ context.Context, _ string) ([]chargebee.Subscription, error) {
	return f.subscriptions, nil
}

func (f *fakeProvider) ListSubscriptionEntitlements(_ context.Context, subscriptionID string) ([]chargebee.Entitlement, error) {
	f.entitlementCalls = append(f.entitlementCalls, subscriptionID)
	return f.entitlements[subscriptionID], nil
}

func (f *fakeProvider) CreatePortalSession(_ context.Context, customerID string) (*chargebee.PortalSession, error) {
	return &chargebee.PortalSession{ID: "ps1", CustomerID: customerID}, nil
}

func (f *fakeProvider) CreatePricingPageSessionForNewSubscription(_ context.Context, params chargebee.NewSubscriptionSessionParams) (*chargebee.PricingPageSession, error) {
	return &chargebee.PricingPageSession{ID: "new:" + params.PricingPageID}, nil
}

func (f *fakeProvider) CreatePricingPageSessionForExistingSubscription(_ context.Context, params chargebee.ExistingSubscriptionSessionParams) (*chargebee.PricingPageSession, error) {
	return &chargebee.PricingPageSession{ID: "existing:" + params.SubscriptionID}, nil
}

// --- ProvisionCustomer ---

func TestProvisionCustomer_MapsRegion(t *testing.T) {
	provider := newFakeProvider()
	svc := NewBillingService(provider)

	customer, err := svc.ProvisionCustomer(context.Background(), "alloy_u1", "a@b.c", "us")
	require.NoError(t, err)
	assert.Equal(t, "AzyeBNVANOcnj1ND2", customer.BusinessEntityID)

	require.Len(t, provider.createCalls, 1)
	assert.Equal(t, "AzyeBNVANOcnj1ND2", provider.createCalls[0].BusinessEntityID)
}

func TestProvisionCustomer_PassesThroughRawEntityID(t *testing.T) {
	provider := newFakeProvider()
	svc := NewBillingService(provider)

	customer, err := svc.ProvisionCustomer(context.Background(), "alloy_u1", "a@b.c", "custom-entity")
	require.NoError(t, err)
	assert.Equal(t, "custom-entity", customer.BusinessEntityID)
}

func TestProvisionCustomer_ConflictNeverMutatesRegion(t *testing.T) {
	provider := newFakeProvider()
	provider.customers["alloy_u1"] = &chargebee.Customer{ID: "alloy_u1", BusinessEntityID: "EU"}
	svc := NewBillingService(provider)

	_, err := svc.ProvisionCustomer(context.Background(), "alloy_u1", "a@b.c", "us")
	require.ErrorIs(t, err, ErrCustomerExists)

	// The create path was never taken and the region is untouched.
	assert.Empty(t, provider.createCalls)
	assert.Equal(t, "EU", provider.customers["alloy_u1"].BusinessEntityID)
}

func TestProvisionCustomer_LookupErrorPropagates(t *testing.T) {
	provider := newFakeProvider()
	provider.getCustomerErr = &chargebee.APIError{Operation: "get customer", Status: 500, Body: "boom"}
	svc := NewBillingService(provider)

	_, err := svc.ProvisionCustomer(context.Background(), "alloy_u1", "a@b.c", "us")
	require.Error(t, err)
	assert.True(t, chargebee.IsAPIError(err))
	assert.Empty(t, provider.createCalls)
}

func TestProvisionCustomer_CreateErrorPropagates(t *testing.T) {
	provider := newFakeProvider()
	provider.createCustomerErr = errors.New("create failed")
	svc := NewBillingService(provider)

	_, err := svc.ProvisionCustomer(context.Background(), "alloy_u1", "a@b.c", "eu")
	assert.Error(t, err)
}

// --- SubscriptionEntitlements ---

func TestSubscriptionEntitlements_SkipsCancelled(t *testing.T) {
	provider := newFakeProvider()
	provider.entitlements["sub1"] = []chargebee.Entitlement{{FeatureID: "seats"}}
	svc := NewBillingService(provider)

	entitlements, err := svc.SubscriptionEntitlements(context.Background(), chargebee.Subscription{
		ID:     "sub1",
		Status: chargebee.SubscriptionStatusCancelled,
	})
	require.NoError(t, err)
	assert.Empty(t, entitlements)
	assert.NotNil(t, entitlements)

	// The gateway was never called for the cancelled subscription.
	assert.Empty(t, provider.entitlementCalls)
}

func TestSubscriptionEntitlements_FetchesOtherStatuses(t *testing.T) {
	for _, status := range []string{
		chargebee.SubscriptionStatusActive,
		chargebee.SubscriptionStatusNonRenewing,
		chargebee.SubscriptionStatusInTrial,
		chargebee.SubscriptionStatusFuture,
		chargebee.SubscriptionStatusPaused,
		chargebee.SubscriptionStatusExpired,
	} {
		provider := newFakeProvider()
		provider.entitlements["sub1"] = []chargebee.Entitlement{{FeatureID: "seats"}}
		svc := NewBillingService(provider)

		entitlements, err := svc.SubscriptionEntitlements(context.Background(), chargebee.Subscription{
			ID:     "sub1",
			Status: status,
		})
		require.NoError(t, err, status)
		assert.Len(t, entitlements, 1, status)
		assert.Equal(t, []string{"sub1"}, provider.entitlementCalls, status)
	}
}

// --- CreatePricingPageSession ---

func TestCreatePricingPageSession_SelectsVariant(t *testing.T) {
	svc := NewBillingService(newFakeProvider())

	session, err := svc.CreatePricingPageSession(context.Background(), PricingPageSessionParams{
		PricingPageID: "pp1",
		CustomerID:    "alloy_u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "new:pp1", session.ID)

	session, err = svc.CreatePricingPageSession(context.Background(), PricingPageSessionParams{
		PricingPageID:  "pp1",
		SubscriptionID: "sub1",
	})
	require.NoError(t, err)
	assert.Equal(t, "existing:sub1", session.ID)
}

// --- List helpers ---

func TestListSubscriptions_NeverNil(t *testing.T) {
	svc := NewBillingService(newFakeProvider())
	subs, err := svc.ListSubscriptions(context.Background(), "alloy_u1")
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)
}

func TestListEntitlements_NeverNil(t *testing.T) {
	svc := NewBillingService(newFakeProvider())
	entitlements, err := svc.ListEntitlements(context.Background(), "sub1")
	require.NoError(t, err)
	assert.NotNil(t, entitlements)
	assert.Empty(t, entitlements)
}
