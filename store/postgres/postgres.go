package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smallnest/goalgraph/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresScopeStore implements store.ScopeStore using PostgreSQL
type PostgresScopeStore struct {
	pool      DBPool
	tableName string
}

var _ store.ScopeStore = (*PostgresScopeStore)(nil)

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "agentic_scopes"
}

const defaultTable = "agentic_scopes"

// NewPostgresScopeStore creates a new Postgres scope store
func NewPostgresScopeStore(ctx context.Context, opts PostgresOptions) (*PostgresScopeStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return NewPostgresScopeStoreWithPool(pool, opts.TableName), nil
}

// NewPostgresScopeStoreWithPool creates a new Postgres scope store with an existing pool
// Useful for testing with mocks
func NewPostgresScopeStoreWithPool(pool DBPool, tableName string) *PostgresScopeStore {
	if tableName == "" {
		tableName = defaultTable
	}
	return &PostgresScopeStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist
func (s *PostgresScopeStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		goal TEXT NOT NULL,
		state JSONB NOT NULL,
		metadata JSONB,
		timestamp TIMESTAMPTZ NOT NULL,
		version INTEGER NOT NULL
	)`, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresScopeStore) Close() {
	s.pool.Close()
}

// Save upserts a snapshot
func (s *PostgresScopeStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	stateJSON, err := json.Marshal(snapshot.State)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	metadataJSON, err := json.Marshal(snapshot.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, goal, state, metadata, timestamp, version)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			goal = EXCLUDED.goal,
			state = EXCLUDED.state,
			metadata = EXCLUDED.metadata,
			timestamp = EXCLUDED.timestamp,
			version = EXCLUDED.version`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		snapshot.ID,
		snapshot.Goal,
		stateJSON,
		metadataJSON,
		snapshot.Timestamp,
		snapshot.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save scope: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by ID
func (s *PostgresScopeStore) Load(ctx context.Context, id string) (*store.Snapshot, error) {
	query := fmt.Sprintf(`SELECT id, goal, state, metadata, timestamp, version FROM %s WHERE id = $1`, s.tableName)

	var snap store.Snapshot
	var stateJSON []byte
	var metadataJSON []byte

	err := s.pool.QueryRow(ctx, query, id).Scan(
		&snap.ID,
		&snap.Goal,
		&stateJSON,
		&metadataJSON,
		&snap.Timestamp,
		&snap.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load scope: %w", err)
	}

	if err := json.Unmarshal(stateJSON, &snap.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &snap.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &snap, nil
}

// Delete removes a snapshot
func (s *PostgresScopeStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete scope: %w", err)
	}
	return nil
}

// List returns all scope IDs ordered by ID
func (s *PostgresScopeStore) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY id", s.tableName)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scopes: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan scope row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scope rows: %w", err)
	}
	return ids, nil
}
