package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallnest/goalgraph/store"
)

// RedisScopeStore implements store.ScopeStore using Redis
type RedisScopeStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ store.ScopeStore = (*RedisScopeStore)(nil)

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "goalgraph:"
	TTL      time.Duration // Expiration for scopes, default 0 (no expiration)
}

// NewRedisScopeStore creates a new Redis scope store
func NewRedisScopeStore(opts RedisOptions) *RedisScopeStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisScopeStoreWithClient(client, opts.Prefix, opts.TTL)
}

// NewRedisScopeStoreWithClient uses an existing client, e.g. a cluster client
func NewRedisScopeStoreWithClient(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisScopeStore {
	if prefix == "" {
		prefix = "goalgraph:"
	}
	return &RedisScopeStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisScopeStore) scopeKey(id string) string {
	return fmt.Sprintf("%sscope:%s", s.prefix, id)
}

func (s *RedisScopeStore) indexKey() string {
	return s.prefix + "scopes"
}

// Save stores a snapshot and indexes its ID
func (s *RedisScopeStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal scope: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.scopeKey(snapshot.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), snapshot.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save scope to redis: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by ID
func (s *RedisScopeStore) Load(ctx context.Context, id string) (*store.Snapshot, error) {
	data, err := s.client.Get(ctx, s.scopeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load scope from redis: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scope: %w", err)
	}
	return &snap, nil
}

// Delete removes a snapshot and its index entry
func (s *RedisScopeStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.scopeKey(id))
	pipe.SRem(ctx, s.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete scope: %w", err)
	}
	return nil
}

// List returns the IDs of stored snapshots. IDs whose key expired through
// the TTL are dropped from the index on the way.
func (s *RedisScopeStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scopes: %w", err)
	}
	if len(ids) == 0 {
		return []string{}, nil
	}

	pipe := s.client.Pipeline()
	exists := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		exists[i] = pipe.Exists(ctx, s.scopeKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to check scopes: %w", err)
	}

	live := make([]string, 0, len(ids))
	var stale []any
	for i, id := range ids {
		if exists[i].Val() > 0 {
			live = append(live, id)
		} else {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune scope index: %w", err)
		}
	}

	slices.Sort(live)
	return live, nil
}

// Close closes the underlying client
func (s *RedisScopeStore) Close() error {
	return s.client.Close()
}
