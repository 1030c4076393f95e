package consumption

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// table is the persisted document: one mapping from composite key to counter.
type table struct {
	ConsumedByKey map[string]int64 `json:"consumedByKey"`
}

// FileStore persists the whole counter table as a single JSON file, replaced
// atomically on every write. The mutex serializes writers within this
// process only; two processes racing on the same file can lose an update
// (last writer wins on the full-file replace), which is accepted for the
// single-instance deployment this serves.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) read() table {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return table{ConsumedByKey: map[string]int64{}}
	}
	var t table
	if err := json.Unmarshal(raw, &t); err != nil || t.ConsumedByKey == nil {
		return table{ConsumedByKey: map[string]int64{}}
	}
	return t
}

func (s *FileStore) write(t table) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal counters: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write counters: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace counters: %w", err)
	}
	return nil
}

func (s *FileStore) BulkGet(_ context.Context, params BulkGetParams) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.read()
	items := make([]Item, 0, len(params.FeatureIDs))
	for _, featureID := range params.FeatureIDs {
		key := counterKey(params.CustomerID, params.SubscriptionID, featureID)
		items = append(items, Item{FeatureID: featureID, Consumed: t.ConsumedByKey[key]})
	}
	return items, nil
}

func (s *FileStore) Increment(_ context.Context, params IncrementParams) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.read()
	key := counterKey(params.CustomerID, params.SubscriptionID, params.FeatureID)
	next := clamp(t.ConsumedByKey[key] + params.Delta)
	t.ConsumedByKey[key] = next

	if err := s.write(t); err != nil {
		return Item{}, err
	}
	return Item{FeatureID: params.FeatureID, Consumed: next}, nil
}
