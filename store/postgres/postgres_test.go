package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/smallnest/goalgraph/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresScopeStore_InitSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresScopeStoreWithPool(mock, "")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS agentic_scopes")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(t, s.InitSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresScopeStore_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresScopeStoreWithPool(mock, "scopes")

	snap := &store.Snapshot{
		ID:        "run-1",
		Goal:      "report",
		State:     map[string]any{"topic": "queues"},
		Metadata:  map[string]any{"owner": "ops"},
		Timestamp: time.Now(),
		Version:   2,
	}

	stateJSON, _ := json.Marshal(snap.State)
	metadataJSON, _ := json.Marshal(snap.Metadata)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO scopes")).
		WithArgs(snap.ID, snap.Goal, stateJSON, metadataJSON, snap.Timestamp, snap.Version).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, s.Save(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresScopeStore_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresScopeStoreWithPool(mock, "scopes")

	ts := time.Now()
	stateJSON, _ := json.Marshal(map[string]any{"topic": "queues"})
	metadataJSON, _ := json.Marshal(map[string]any{"owner": "ops"})

	rows := pgxmock.NewRows([]string{"id", "goal", "state", "metadata", "timestamp", "version"}).
		AddRow("run-1", "report", stateJSON, metadataJSON, ts, 2)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, goal, state, metadata, timestamp, version FROM scopes WHERE id = $1")).
		WithArgs("run-1").
		WillReturnRows(rows)

	loaded, err := s.Load(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", loaded.ID)
	assert.Equal(t, "report", loaded.Goal)
	assert.Equal(t, "queues", loaded.State["topic"])
	assert.Equal(t, "ops", loaded.Metadata["owner"])
	assert.Equal(t, 2, loaded.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresScopeStore_LoadNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresScopeStoreWithPool(mock, "scopes")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, goal, state")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresScopeStore_LoadFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresScopeStoreWithPool(mock, "scopes")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, goal, state")).
		WithArgs("run-1").
		WillReturnError(errors.New("connection reset"))

	_, err = s.Load(context.Background(), "run-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresScopeStore_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresScopeStoreWithPool(mock, "scopes")

	rows := pgxmock.NewRows([]string{"id"}).AddRow("a").AddRow("b")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM scopes ORDER BY id")).
		WillReturnRows(rows)

	ids, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresScopeStore_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresScopeStoreWithPool(mock, "scopes")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM scopes WHERE id = $1")).
		WithArgs("run-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, s.Delete(context.Background(), "run-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
