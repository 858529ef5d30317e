package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig carries the tunables for the pgx pool. Zero values fall
// back to defaults sized for a small API deployment.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func (pc PoolConfig) withDefaults() PoolConfig {
	if pc.MaxConns <= 0 {
		pc.MaxConns = 10
	}
	if pc.MinConns < 0 {
		pc.MinConns = 0
	}
	if pc.MaxConnLifetime <= 0 {
		pc.MaxConnLifetime = 30 * time.Minute
	}
	if pc.MaxConnIdleTime <= 0 {
		pc.MaxConnIdleTime = 5 * time.Minute
	}
	return pc
}

type DB struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string, pc PoolConfig) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	pc = pc.withDefaults()
	cfg.MaxConns = pc.MaxConns
	cfg.MinConns = pc.MinConns
	cfg.MaxConnLifetime = pc.MaxConnLifetime
	cfg.MaxConnIdleTime = pc.MaxConnIdleTime
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connected",
		"max_conns", pc.MaxConns,
		"min_conns", pc.MinConns,
		"conn_lifetime", pc.MaxConnLifetime)
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
