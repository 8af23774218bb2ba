package agentic

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smallnest/goalgraph/store"
)

// Scope is the key/value state of one agentic run. Agents read their inputs
// from it and the workflow writes each agent's output back under its output
// key. A Scope is safe for concurrent use.
type Scope struct {
	mu      sync.RWMutex
	id      string
	values  map[string]any
	version int
}

// NewScope returns a scope with a fresh ID holding a copy of initial.
func NewScope(initial map[string]any) *Scope {
	return NewScopeWithID(uuid.NewString(), initial)
}

// NewScopeWithID returns a scope with the given ID holding a copy of initial.
func NewScopeWithID(id string, initial map[string]any) *Scope {
	values := maps.Clone(initial)
	if values == nil {
		values = make(map[string]any)
	}
	return &Scope{id: id, values: values}
}

// RestoreScope rebuilds a scope from a persisted snapshot.
func RestoreScope(snap *store.Snapshot) *Scope {
	s := NewScopeWithID(snap.ID, snap.State)
	s.version = snap.Version
	return s
}

// ID returns the scope identifier
func (s *Scope) ID() string {
	return s.id
}

// Read returns the value stored under key
func (s *Scope) Read(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Write stores value under key, replacing any previous value
func (s *Scope) Write(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.version++
}

// Has reports whether key is present
func (s *Scope) Has(key string) bool {
	_, ok := s.Read(key)
	return ok
}

// Keys returns the present keys, sorted
func (s *Scope) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Values returns a shallow copy of the stored values
func (s *Scope) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Version counts the writes made to the scope, including those made before
// it was last persisted.
func (s *Scope) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot captures the scope for persistence.
func (s *Scope) Snapshot(goal string) *store.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &store.Snapshot{
		ID:        s.id,
		Goal:      goal,
		State:     maps.Clone(s.values),
		Timestamp: time.Now(),
		Version:   s.version,
	}
}
