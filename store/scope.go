package store

import (
	"context"
	"errors"
	"maps"
	"time"
)

// ErrNotFound is returned (wrapped) when a scope ID is not in the store.
var ErrNotFound = errors.New("scope not found")

// Snapshot is the persisted form of one agentic run: the goal it works
// towards and every key/value produced so far.
type Snapshot struct {
	ID        string         `json:"id"`
	Goal      string         `json:"goal"`
	State     map[string]any `json:"state"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Version   int            `json:"version"`
}

// Clone returns a copy of s with its own maps. Values inside the maps are
// shared.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.State = maps.Clone(s.State)
	c.Metadata = maps.Clone(s.Metadata)
	return &c
}

// ScopeStore persists agentic scopes between runs.
type ScopeStore interface {
	// Save stores a snapshot, replacing any snapshot with the same ID
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load retrieves a snapshot by ID
	Load(ctx context.Context, id string) (*Snapshot, error)

	// Delete removes a snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored snapshots, sorted
	List(ctx context.Context) ([]string, error)
}
