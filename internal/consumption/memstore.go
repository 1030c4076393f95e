package consumption

import (
	"context"
	"sync"
)

// MemoryStore keeps counters in memory. Used by tests and ephemeral
// deployments that don't need counters to survive a restart.
type MemoryStore struct {
	mu            sync.Mutex
	consumedByKey map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{consumedByKey: map[string]int64{}}
}

func (s *MemoryStore) BulkGet(_ context.Context, params BulkGetParams) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, 0, len(params.FeatureIDs))
	for _, featureID := range params.FeatureIDs {
		key := counterKey(params.CustomerID, params.SubscriptionID, featureID)
		items = append(items, Item{FeatureID: featureID, Consumed: s.consumedByKey[key]})
	}
	return items, nil
}

func (s *MemoryStore) Increment(_ context.Context, params IncrementParams) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := counterKey(params.CustomerID, params.SubscriptionID, params.FeatureID)
	next := clamp(s.consumedByKey[key] + params.Delta)
	s.consumedByKey[key] = next
	return Item{FeatureID: params.FeatureID, Consumed: next}, nil
}
