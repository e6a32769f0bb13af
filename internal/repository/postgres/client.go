package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Client wraps the Postgres connection pool.
type Client struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewClient creates a connection pool and fails fast when the database is
// unreachable, so a misconfigured deployment dies at boot instead of on the
// first webhook.
func NewClient(ctx context.Context, databaseURL string, log *zap.Logger) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	log.Info("Connecting to Postgres")

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Postgres connection successful")

	return &Client{pool: pool, log: log}, nil
}

// Pool exposes the underlying connection pool.
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// Close shuts down the connection pool.
func (c *Client) Close() {
	c.pool.Close()
}
