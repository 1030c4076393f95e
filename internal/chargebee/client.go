package chargebee

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var providerRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chargebee_requests_total",
		Help: "Total number of requests to the billing provider",
	},
	[]string{"operation", "status"},
)

// Client is a typed client for the billing provider's REST API. All calls
// authenticate with the site API key as the basic-auth username and a blank
// password. Failed calls are never retried; one attempt is surfaced directly.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client for the given site base URL
// (e.g. "https://acme-test.chargebee.com").
func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// do performs one authenticated call and returns the status and raw body.
// A nil form means a body-less request; otherwise the form is sent URL-encoded.
func (c *Client) do(ctx context.Context, operation, method, path string, form url.Values) (int, []byte, error) {
	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("%s request: %w", operation, err)
	}
	req.SetBasicAuth(c.apiKey, "")
	// Merchant data must always reflect current provider state.
	req.Header.Set("Cache-Control", "no-store")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.logger.Debug().Str("operation", operation).Str("method", method).Str("path", path).Msg("chargebee request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		providerRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		return 0, nil, &APIError{Operation: operation, Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		providerRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		return 0, nil, &APIError{Operation: operation, Status: resp.StatusCode, Body: err.Error()}
	}

	providerRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug().
		Str("operation", operation).
		Int("status", resp.StatusCode).
		Str("body", previewBody(body)).
		Msg("chargebee response")

	return resp.StatusCode, body, nil
}

func previewBody(body []byte) string {
	if len(body) > maxBodyPreview {
		return string(body[:maxBodyPreview]) + "…(truncated)"
	}
	return string(body)
}

// GetCustomer fetches a customer by id. Returns (nil, nil) when the provider
// reports resource_not_found; any other non-2xx response is an *APIError.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	const op = "get customer"
	status, body, err := c.do(ctx, op, http.MethodGet, "/api/v2/customers/"+url.PathEscape(customerID), nil)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		if isNotFound(status, body) {
			return nil, nil
		}
		return nil, newAPIError(op, status, body)
	}

	var result struct {
		Customer Customer `json:"customer"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	return &result.Customer, nil
}

// CreateCustomer creates a customer. The caller is responsible for confirming
// no customer exists first; this performs no idempotency guard.
func (c *Client) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*Customer, error) {
	const op = "create customer"
	form := url.Values{}
	form.Set("id", params.ID)
	form.Set("email", params.Email)
	form.Set("business_entity_id", params.BusinessEntityID)

	status, body, err := c.do(ctx, op, http.MethodPost, "/api/v2/customers", form)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, newAPIError(op, status, body)
	}

	var result struct {
		Customer Customer `json:"customer"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	return &result.Customer, nil
}

// ListSubscriptionsByCustomer returns all subscriptions for a customer.
// A 2xx response whose list payload is malformed or absent degrades to an
// empty slice so dashboard rendering stays resilient to partial provider
// responses; non-2xx responses are still surfaced as errors.
func (c *Client) ListSubscriptionsByCustomer(ctx context.Context, customerID string) ([]Subscription, error) {
	const op = "list subscriptions"
	q := url.Values{}
	q.Set("customer_id[is]", customerID)

	status, body, err := c.do(ctx, op, http.MethodGet, "/api/v2/subscriptions?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, newAPIError(op, status, body)
	}

	var result struct {
		List []struct {
			Subscription Subscription `json:"subscription"`
		} `json:"list"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return []Subscription{}, nil
	}

	subs := make([]Subscription, 0, len(result.List))
	for _, entry := range result.List {
		subs = append(subs, entry.Subscription)
	}
	return subs, nil
}

// ListSubscriptionEntitlements returns the entitlements granted by a
// subscription. Same empty-on-malformed-payload policy as subscription lists.
func (c *Client) ListSubscriptionEntitlements(ctx context.Context, subscriptionID string) ([]Entitlement, error) {
	const op = "list entitlements"
	path := fmt.Sprintf("/api/v2/subscriptions/%s/subscription_entitlements", url.PathEscape(subscriptionID))

	status, body, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, newAPIError(op, status, body)
	}

	var result struct {
		List []struct {
			SubscriptionEntitlement Entitlement `json:"subscription_entitlement"`
		} `json:"list"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return []Entitlement{}, nil
	}

	entitlements := make([]Entitlement, 0, len(result.List))
	for _, entry := range result.List {
		entitlements = append(entitlements, entry.SubscriptionEntitlement)
	}
	return entitlements, nil
}

// CreatePortalSession creates a one-shot self-service portal session.
func (c *Client) CreatePortalSession(ctx context.Context, customerID string) (*PortalSession, error) {
	const op = "create portal session"
	form := url.Values{}
	form.Set("customer[id]", customerID)

	status, body, err := c.do(ctx, op, http.MethodPost, "/api/v2/portal_sessions", form)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, newAPIError(op, status, body)
	}

	var result struct {
		PortalSession PortalSession `json:"portal_session"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode portal session: %w", err)
	}
	return &result.PortalSession, nil
}

// CreatePricingPageSessionForNewSubscription creates a pricing page session
// for checking out a brand-new subscription.
func (c *Client) CreatePricingPageSessionForNewSubscription(ctx context.Context, params NewSubscriptionSessionParams) (*PricingPageSession, error) {
	const op = "create pricing page session"
	form := url.Values{}
	form.Set("pricing_page[id]", params.PricingPageID)
	if params.BusinessEntityID != "" {
		form.Set("business_entity_id", params.BusinessEntityID)
	}
	if params.CustomerID != "" {
		form.Set("customer[id]", params.CustomerID)
	}
	form.Set("auto_select_local_currency", strconv.FormatBool(params.AutoSelectLocalCurrency))

	return c.createPricingPageSession(ctx, op, "/api/v2/pricing_page_sessions/create_for_new_subscription", form)
}

// CreatePricingPageSessionForExistingSubscription creates a pricing page
// session for modifying an existing subscription.
func (c *Client) CreatePricingPageSessionForExistingSubscription(ctx context.Context, params ExistingSubscriptionSessionParams) (*PricingPageSession, error) {
	const op = "create pricing page session (existing subscription)"
	form := url.Values{}
	form.Set("pricing_page[id]", params.PricingPageID)
	form.Set("subscription[id]", params.SubscriptionID)
	if params.BusinessEntityID != "" {
		form.Set("business_entity_id", params.BusinessEntityID)
	}

	return c.createPricingPageSession(ctx, op, "/api/v2/pricing_page_sessions/create_for_existing_subscription", form)
}

func (c *Client) createPricingPageSession(ctx context.Context, op, path string, form url.Values) (*PricingPageSession, error) {
	status, body, err := c.do(ctx, op, http.MethodPost, path, form)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, newAPIError(op, status, body)
	}

	var result struct {
		PricingPageSession PricingPageSession `json:"pricing_page_session"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode pricing page session: %w", err)
	}
	return &result.PricingPageSession, nil
}
