package chargebee

// Customer is the provider-side customer record. BusinessEntityID is assigned
// at creation and immutable afterwards.
type Customer struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	BusinessEntityID string `json:"business_entity_id"`
}

// SubscriptionItem is one line item on a subscription.
type SubscriptionItem struct {
	ItemPriceID string `json:"item_price_id"`
	Quantity    int64  `json:"quantity"`
	Amount      int64  `json:"amount"`
}

// Subscription statuses as reported by the provider.
const (
	SubscriptionStatusActive      = "active"
	SubscriptionStatusNonRenewing = "non_renewing"
	SubscriptionStatusInTrial     = "in_trial"
	SubscriptionStatusFuture      = "future"
	SubscriptionStatusPaused      = "paused"
	SubscriptionStatusCancelled   = "cancelled"
	SubscriptionStatusExpired     = "expired"
)

type Subscription struct {
	ID                      string             `json:"id"`
	CustomerID              string             `json:"customer_id"`
	CurrencyCode            string             `json:"currency_code"`
	Status                  string             `json:"status"`
	CurrentTermStart        int64              `json:"current_term_start,omitempty"`
	CurrentTermEnd          int64              `json:"current_term_end,omitempty"`
	CancelledAt             int64              `json:"cancelled_at,omitempty"`
	CancelScheduleCreatedAt int64              `json:"cancel_schedule_created_at,omitempty"`
	SubscriptionItems       []SubscriptionItem `json:"subscription_items"`
}

// Entitlement is a feature grant attached to a subscription. Always fetched
// fresh from the provider, never persisted locally.
type Entitlement struct {
	FeatureID   string `json:"feature_id"`
	FeatureType string `json:"feature_type"`
	Value       string `json:"value"`
	IsEnabled   bool   `json:"is_enabled"`
}

// PortalSession is a one-shot token for the provider's self-service portal.
type PortalSession struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	AccessURL   string `json:"access_url"`
	Status      string `json:"status"`
	CustomerID  string `json:"customer_id"`
	CreatedAt   int64  `json:"created_at"`
	ExpiresAt   int64  `json:"expires_at"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// PricingPageSession is a short-lived token for a hosted pricing page.
type PricingPageSession struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}

type CreateCustomerParams struct {
	ID               string
	Email            string
	BusinessEntityID string
}

type NewSubscriptionSessionParams struct {
	PricingPageID           string
	BusinessEntityID        string
	CustomerID              string
	AutoSelectLocalCurrency bool
}

type ExistingSubscriptionSessionParams struct {
	PricingPageID    string
	SubscriptionID   string
	BusinessEntityID string
}
