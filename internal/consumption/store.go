// Package consumption is a small persistent feature-usage counter keyed by
// (customer, subscription, feature). Counters are created implicitly on first
// increment, clamped at a floor of zero, and never expire.
package consumption

import (
	"context"
	"fmt"
)

// Item is one feature counter value.
type Item struct {
	FeatureID string `json:"featureId"`
	Consumed  int64  `json:"consumed"`
}

type BulkGetParams struct {
	CustomerID     string
	SubscriptionID string
	FeatureIDs     []string
}

type IncrementParams struct {
	CustomerID     string
	SubscriptionID string
	FeatureID      string
	Delta          int64
}

// Store is the usage counter abstraction. Implementations must scope every
// counter by customer id as well as subscription and feature id, so reused
// subscription/feature ids can never collide across customers.
type Store interface {
	// BulkGet returns one Item per requested feature id, in request order,
	// reading 0 for keys never incremented.
	BulkGet(ctx context.Context, params BulkGetParams) ([]Item, error)
	// Increment adds Delta (which may be negative) to the counter, clamps the
	// result at zero, persists, and returns the new value.
	Increment(ctx context.Context, params IncrementParams) (Item, error)
}

func counterKey(customerID, subscriptionID, featureID string) string {
	return fmt.Sprintf("%s::%s::%s", customerID, subscriptionID, featureID)
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
