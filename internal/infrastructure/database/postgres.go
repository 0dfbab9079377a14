package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/Alessandra005/witcon2026/pkg/config"
)

// schemaLockID はスキーマ適用時のadvisory lockキー
const schemaLockID = 20260301

// PoolConfig は接続プールの設定
type PoolConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TraceQueries    bool // trueの場合、実行したSQLをdebugログに出す
}

// PoolConfigFrom はアプリケーション設定からプール設定を組み立てる
func PoolConfigFrom(cfg config.DatabaseConfig) PoolConfig {
	return PoolConfig{
		URL:             cfg.URL,
		MaxConns:        int32(cfg.MaxConns),
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 15 * time.Minute,
		TraceQueries:    cfg.TraceQueries,
	}
}

// PostgresClient はPostgreSQLへの接続を管理する
type PostgresClient struct {
	pool *pgxpool.Pool
}

// NewPostgresClient は接続プールを作成し疎通を確認する
func NewPostgresClient(ctx context.Context, cfg PoolConfig) (*PostgresClient, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	if cfg.TraceQueries {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   tracelog.LoggerFunc(logQuery),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{pool: pool}, nil
}

func logQuery(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	attrs := make([]any, 0, len(data)*2)
	for k, v := range data {
		attrs = append(attrs, k, v)
	}
	slogLevel := slog.LevelDebug
	if level <= tracelog.LogLevelWarn {
		slogLevel = slog.LevelWarn
	}
	slog.Log(ctx, slogLevel, "pgx: "+msg, attrs...)
}

// Close はコネクションプールを閉じる
func (c *PostgresClient) Close() {
	c.pool.Close()
}

// Health はデータベースのヘルスチェックを行う
func (c *PostgresClient) Health(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// TxManager はこのプールのトランザクションマネージャーを返す
func (c *PostgresClient) TxManager() *TxManager {
	return NewTxManager(c.pool)
}

// Migrate はスキーマを適用する
// 複数インスタンスが同時に起動してもadvisory lockで直列化する
func (c *PostgresClient) Migrate(ctx context.Context) error {
	return c.TxManager().WithTransaction(ctx, func(ctx context.Context) error {
		q := c.TxManager().GetQuerier(ctx)
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockID); err != nil {
			return fmt.Errorf("failed to acquire schema lock: %w", err)
		}
		return EnsureSchema(ctx, q)
	})
}
