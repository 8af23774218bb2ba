package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/smallnest/goalgraph/store"
)

const extension = ".json"

// ErrInvalidID is returned for IDs that cannot be used as file names.
var ErrInvalidID = errors.New("invalid scope id")

// FileScopeStore keeps one JSON document per scope in a directory
type FileScopeStore struct {
	dir string
	mu  sync.RWMutex
}

var _ store.ScopeStore = (*FileScopeStore)(nil)

// NewFileScopeStore creates the directory if needed and returns a store on it
func NewFileScopeStore(dir string) (*FileScopeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scope directory: %w", err)
	}
	return &FileScopeStore{dir: dir}, nil
}

func (s *FileScopeStore) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.dir, id+extension), nil
}

// Save writes the snapshot. The file is replaced atomically.
func (s *FileScopeStore) Save(_ context.Context, snapshot *store.Snapshot) error {
	path, err := s.path(snapshot.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scope: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".scope-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write scope: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write scope: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to save scope: %w", err)
	}
	return nil
}

// Load reads a snapshot
func (s *FileScopeStore) Load(_ context.Context, id string) (*store.Snapshot, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read scope: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scope %s: %w", id, err)
	}
	return &snap, nil
}

// Delete removes a snapshot file
func (s *FileScopeStore) Delete(_ context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete scope: %w", err)
	}
	return nil
}

// List returns the IDs of the stored snapshots, sorted
func (s *FileScopeStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	entries, err := os.ReadDir(s.dir)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to list scopes: %w", err)
	}

	ids := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, extension) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, extension))
	}
	slices.Sort(ids)
	return ids, nil
}
