// Package store persists agentic scopes so that goal-oriented runs can be
// inspected or resumed later.
//
// A Snapshot holds the run's goal and every key/value it has produced.
// Backends implement ScopeStore:
//
//   - store/memory: in-process map, for tests and single runs
//   - store/file: one JSON document per scope in a directory
//   - store/sqlite: database/sql with github.com/mattn/go-sqlite3
//   - store/postgres: github.com/jackc/pgx/v5 connection pool
//   - store/redis: github.com/redis/go-redis/v9
//
// Values are stored as JSON. After a round trip numbers decode as float64
// and structs decode as map[string]any.
//
// Loading an unknown ID returns an error wrapping ErrNotFound:
//
//	snap, err := s.Load(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//		// start a new run
//	}
package store
