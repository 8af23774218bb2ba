package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/smallnest/goalgraph/store"
)

// MemoryScopeStore keeps snapshots in a map
type MemoryScopeStore struct {
	mu        sync.RWMutex
	snapshots map[string]*store.Snapshot
}

var _ store.ScopeStore = (*MemoryScopeStore)(nil)

// NewMemoryScopeStore creates an empty in-memory store
func NewMemoryScopeStore() *MemoryScopeStore {
	return &MemoryScopeStore{
		snapshots: make(map[string]*store.Snapshot),
	}
}

// Save stores a copy of snapshot
func (s *MemoryScopeStore) Save(_ context.Context, snapshot *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ID] = snapshot.Clone()
	return nil
}

// Load returns a copy of the stored snapshot
func (s *MemoryScopeStore) Load(_ context.Context, id string) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return snap.Clone(), nil
}

// Delete removes a snapshot
func (s *MemoryScopeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	return nil
}

// List returns the stored IDs, sorted
func (s *MemoryScopeStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
