package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/smallnest/goalgraph/store"
)

// SqliteScopeStore implements store.ScopeStore using SQLite
type SqliteScopeStore struct {
	db        *sql.DB
	tableName string
}

var _ store.ScopeStore = (*SqliteScopeStore)(nil)

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "agentic_scopes"
}

// NewSqliteScopeStore opens the database and creates the table if needed
func NewSqliteScopeStore(opts SqliteOptions) (*SqliteScopeStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "agentic_scopes"
	}

	s := &SqliteScopeStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// InitSchema creates the necessary table if it doesn't exist
func (s *SqliteScopeStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			goal TEXT NOT NULL,
			state TEXT NOT NULL,
			metadata TEXT,
			timestamp DATETIME NOT NULL,
			version INTEGER NOT NULL
		);
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SqliteScopeStore) Close() error {
	return s.db.Close()
}

// Save upserts a snapshot
func (s *SqliteScopeStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	stateJSON, err := json.Marshal(snapshot.State)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	metadataJSON, err := json.Marshal(snapshot.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, goal, state, metadata, timestamp, version)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			goal = excluded.goal,
			state = excluded.state,
			metadata = excluded.metadata,
			timestamp = excluded.timestamp,
			version = excluded.version
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.Goal,
		string(stateJSON),
		string(metadataJSON),
		snapshot.Timestamp,
		snapshot.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save scope: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by ID
func (s *SqliteScopeStore) Load(ctx context.Context, id string) (*store.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, goal, state, metadata, timestamp, version
		FROM %s
		WHERE id = ?
	`, s.tableName)

	var snap store.Snapshot
	var stateJSON string
	var metadataJSON sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&snap.ID,
		&snap.Goal,
		&stateJSON,
		&metadataJSON,
		&snap.Timestamp,
		&snap.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load scope: %w", err)
	}

	if err := json.Unmarshal([]byte(stateJSON), &snap.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &snap.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &snap, nil
}

// Delete removes a snapshot
func (s *SqliteScopeStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete scope: %w", err)
	}
	return nil
}

// List returns all scope IDs ordered by ID
func (s *SqliteScopeStore) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY id", s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
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
