package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/edvin/alloy/internal/chargebee"
	"github.com/edvin/alloy/internal/model"
)

// ErrCustomerExists is returned when provisioning is attempted for a customer
// that already exists on the provider side. The business entity id is
// immutable after creation, so a second create must conflict rather than
// silently change the region.
var ErrCustomerExists = errors.New("customer already exists")

// ProviderClient is the slice of the billing provider gateway the service
// layer needs. Satisfied by *chargebee.Client.
type ProviderClient interface {
	GetCustomer(ctx context.Context, customerID string) (*chargebee.Customer, error)
	CreateCustomer(ctx context.Context, params chargebee.CreateCustomerParams) (*chargebee.Customer, error)
	ListSubscriptionsByCustomer(ctx context.Context, customerID string) ([]chargebee.Subscription, error)
	ListSubscriptionEntitlements(ctx context.Context, subscriptionID string) ([]chargebee.Entitlement, error)
	CreatePortalSession(ctx context.Context, customerID string) (*chargebee.PortalSession, error)
	CreatePricingPageSessionForNewSubscription(ctx context.Context, params chargebee.NewSubscriptionSessionParams) (*chargebee.PricingPageSession, error)
	CreatePricingPageSessionForExistingSubscription(ctx context.Context, params chargebee.ExistingSubscriptionSessionParams) (*chargebee.PricingPageSession, error)
}

// BillingService layers dashboard policy on top of the raw provider gateway.
type BillingService struct {
	provider ProviderClient
}

func NewBillingService(provider ProviderClient) *BillingService {
	return &BillingService{provider: provider}
}

// GetCustomer proxies to the gateway; (nil, nil) means not found.
func (s *BillingService) GetCustomer(ctx context.Context, customerID string) (*chargebee.Customer, error) {
	return s.provider.GetCustomer(ctx, customerID)
}

// ProvisionCustomer creates the customer after confirming none exists yet.
// The region may be a short regional code ("us"/"eu") or a raw business
// entity id; it is mapped before the create call and never mutated afterwards.
func (s *BillingService) ProvisionCustomer(ctx context.Context, customerID, email, region string) (*chargebee.Customer, error) {
	existing, err := s.provider.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("check existing customer: %w", err)
	}
	if existing != nil {
		return nil, ErrCustomerExists
	}

	return s.provider.CreateCustomer(ctx, chargebee.CreateCustomerParams{
		ID:               customerID,
		Email:            email,
		BusinessEntityID: model.BusinessEntityID(region),
	})
}

// ListSubscriptions returns the customer's subscriptions, never nil.
func (s *BillingService) ListSubscriptions(ctx context.Context, customerID string) ([]chargebee.Subscription, error) {
	subs, err := s.provider.ListSubscriptionsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []chargebee.Subscription{}
	}
	return subs, nil
}

// ListEntitlements fetches entitlements for a subscription id, policy-free.
func (s *BillingService) ListEntitlements(ctx context.Context, subscriptionID string) ([]chargebee.Entitlement, error) {
	entitlements, err := s.provider.ListSubscriptionEntitlements(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if entitlements == nil {
		entitlements = []chargebee.Entitlement{}
	}
	return entitlements, nil
}

// SubscriptionEntitlements is the dashboard-side consumer of entitlements.
// Cancelled subscriptions grant nothing, so the gateway is not called for
// them at all.
func (s *BillingService) SubscriptionEntitlements(ctx context.Context, sub chargebee.Subscription) ([]chargebee.Entitlement, error) {
	if sub.Status == chargebee.SubscriptionStatusCancelled {
		return []chargebee.Entitlement{}, nil
	}
	return s.ListEntitlements(ctx, sub.ID)
}

// CreatePortalSession creates a self-service portal session for the customer.
func (s *BillingService) CreatePortalSession(ctx context.Context, customerID string) (*chargebee.PortalSession, error) {
	return s.provider.CreatePortalSession(ctx, customerID)
}

// PricingPageSessionParams selects between the new-subscription and
// existing-subscription checkout variants: a non-empty SubscriptionID means
// the session modifies that subscription.
type PricingPageSessionParams struct {
	PricingPageID    string
	BusinessEntityID string
	SubscriptionID   string
	CustomerID       string
}

// CreatePricingPageSession creates the appropriate session variant.
func (s *BillingService) CreatePricingPageSession(ctx context.Context, params PricingPageSessionParams) (*chargebee.PricingPageSession, error) {
	if params.SubscriptionID != "" {
		return s.provider.CreatePricingPageSessionForExistingSubscription(ctx, chargebee.ExistingSubscriptionSessionParams{
			PricingPageID:    params.PricingPageID,
			SubscriptionID:   params.SubscriptionID,
			BusinessEntityID: params.BusinessEntityID,
		})
	}
	return s.provider.CreatePricingPageSessionForNewSubscription(ctx, chargebee.NewSubscriptionSessionParams{
		PricingPageID:           params.PricingPageID,
		BusinessEntityID:        params.BusinessEntityID,
		CustomerID:              params.CustomerID,
		AutoSelectLocalCurrency: true,
	})
}
