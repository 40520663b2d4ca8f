package datastore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config creates pgxpool.Config with default settings for the importer's
// workload: a handful of concurrent inserts, short-lived process.
func Config(dsn string) (*pgxpool.Config, error) {
	const defaultMaxConns = int32(8)
	const defaultMinConns = int32(1)
	const defaultMaxConnLifetime = time.Minute * 10
	const defaultMaxIdletime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn to config: %w", err)
	}

	config.MaxConns = defaultMaxConns
	config.MinConns = defaultMinConns
	config.MaxConnLifetime = defaultMaxConnLifetime
	config.MaxConnIdleTime = defaultMaxIdletime
	config.HealthCheckPeriod = defaultHealthCheckPeriod
	config.ConnConfig.ConnectTimeout = defaultConnectTimeout
	return config, nil
}

// NewDBPool creates a new PostgreSQL connection pool and checks it is reachable.
func NewDBPool(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
	cp, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := cp.Ping(ctx); err != nil {
		cp.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return cp, nil
}

// NewPostgresDataStore wraps a connection pool.
func NewPostgresDataStore(pool *pgxpool.Pool) *PostgresDataStore {
	return &PostgresDataStore{cp: pool}
}
