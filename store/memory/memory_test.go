package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/smallnest/goalgraph/store"
)

func TestMemoryScopeStore_New(t *testing.T) {
	t.Parallel()

	ms := NewMemoryScopeStore()
	if ms == nil {
		t.Fatal("Store should not be nil")
	}

	var _ store.ScopeStore = ms
}

func TestMemoryScopeStore_BasicOperations(t *testing.T) {
	t.Parallel()

	t.Run("save and load", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryScopeStore()
		ctx := context.Background()

		snap := &store.Snapshot{
			ID:        "run-123",
			Goal:      "report",
			State:     map[string]any{"topic": "go generics", "notes": "three bullets"},
			Metadata:  map[string]any{"planned_steps": 2},
			Timestamp: time.Now(),
			Version:   2,
		}

		if err := ms.Save(ctx, snap); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		loaded, err := ms.Load(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}

		if loaded.Goal != snap.Goal {
			t.Errorf("Goal mismatch: got %s, want %s", loaded.Goal, snap.Goal)
		}
		if loaded.Version != snap.Version {
			t.Errorf("Version mismatch: got %d, want %d", loaded.Version, snap.Version)
		}
		if loaded.State["notes"] != "three bullets" {
			t.Errorf("State not preserved: %v", loaded.State)
		}
	})

	t.Run("load missing returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryScopeStore()
		_, err := ms.Load(context.Background(), "nope")
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("stored snapshot is isolated from caller", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryScopeStore()
		ctx := context.Background()

		snap := &store.Snapshot{ID: "run-1", State: map[string]any{"a": 1}}
		_ = ms.Save(ctx, snap)
		snap.State["a"] = 2

		loaded, _ := ms.Load(ctx, "run-1")
		if loaded.State["a"] != 1 {
			t.Errorf("Stored state changed through caller map: %v", loaded.State)
		}

		loaded.State["b"] = 3
		again, _ := ms.Load(ctx, "run-1")
		if _, ok := again.State["b"]; ok {
			t.Error("Stored state changed through loaded map")
		}
	})

	t.Run("delete and list", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryScopeStore()
		ctx := context.Background()

		for _, id := range []string{"c", "a", "b"} {
			_ = ms.Save(ctx, &store.Snapshot{ID: id})
		}

		ids, err := ms.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if fmt.Sprint(ids) != "[a b c]" {
			t.Errorf("Unexpected ids: %v", ids)
		}

		if err := ms.Delete(ctx, "b"); err != nil {
			t.Fatalf("Failed to delete: %v", err)
		}
		if err := ms.Delete(ctx, "missing"); err != nil {
			t.Fatalf("Deleting a missing id should not fail: %v", err)
		}

		ids, _ = ms.List(ctx)
		if fmt.Sprint(ids) != "[a c]" {
			t.Errorf("Unexpected ids after delete: %v", ids)
		}
	})
}

func TestMemoryScopeStore_Concurrent(t *testing.T) {
	t.Parallel()

	ms := NewMemoryScopeStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("run-%02d", i)
			_ = ms.Save(ctx, &store.Snapshot{ID: id, Version: i})
			if _, err := ms.Load(ctx, id); err != nil {
				t.Errorf("Failed to load %s: %v", id, err)
			}
		}()
	}
	wg.Wait()

	ids, _ := ms.List(ctx)
	if len(ids) != 50 {
		t.Errorf("Expected 50 snapshots, got %d", len(ids))
	}
}
