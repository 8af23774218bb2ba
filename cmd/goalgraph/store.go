package main

import (
	"context"
	"fmt"

	"github.com/smallnest/goalgraph/store"
	"github.com/smallnest/goalgraph/store/file"
	"github.com/smallnest/goalgraph/store/memory"
	"github.com/smallnest/goalgraph/store/postgres"
	"github.com/smallnest/goalgraph/store/redis"
	"github.com/smallnest/goalgraph/store/sqlite"
	"github.com/spf13/pflag"
)

type storeFlags struct {
	kind        string
	dir         string
	sqlitePath  string
	redisAddr   string
	redisPrefix string
	postgresDSN string
}

func (f *storeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.kind, "store", "memory", "Scope store: memory, file, sqlite, redis or postgres")
	fs.StringVar(&f.dir, "store-dir", ".goalgraph", "Directory for the file store")
	fs.StringVar(&f.sqlitePath, "sqlite-path", "goalgraph.db", "Database file for the sqlite store")
	fs.StringVar(&f.redisAddr, "redis-addr", "localhost:6379", "Address for the redis store")
	fs.StringVar(&f.redisPrefix, "redis-prefix", "", "Key prefix for the redis store")
	fs.StringVar(&f.postgresDSN, "postgres-dsn", "", "Connection string for the postgres store")
}

// open returns the configured store and a function releasing it.
func (f *storeFlags) open(ctx context.Context) (store.ScopeStore, func(), error) {
	switch f.kind {
	case "memory":
		return memory.NewMemoryScopeStore(), func() {}, nil
	case "file":
		s, err := file.NewFileScopeStore(f.dir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "sqlite":
		s, err := sqlite.NewSqliteScopeStore(sqlite.SqliteOptions{Path: f.sqlitePath})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "redis":
		s := redis.NewRedisScopeStore(redis.RedisOptions{Addr: f.redisAddr, Prefix: f.redisPrefix})
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		if f.postgresDSN == "" {
			return nil, nil, fmt.Errorf("--postgres-dsn is required for the postgres store")
		}
		s, err := postgres.NewPostgresScopeStore(ctx, postgres.PostgresOptions{ConnString: f.postgresDSN})
		if err != nil {
			return nil, nil, err
		}
		if err := s.InitSchema(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", f.kind)
}
