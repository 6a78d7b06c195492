// Package redis is the best-effort dedup cache in front of C5's
// (payee_id, |request_id|, transfer_id) lookup. It is a pure
// optimization: correctness always falls back to the Postgres unique
// index, so a cache miss or a down Redis never changes the result, only
// how often the coordinator has to ask Postgres.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/epandurski/swpt-payments/internal/swptlog"
)

// Connection is a hub which deals with the coordinator's Redis
// connection, mirroring the teacher's RedisConnection singleton.
type Connection struct {
	ConnectionString string
	Logger           swptlog.Logger

	client    *redis.Client
	Connected bool
}

func (c *Connection) Connect(ctx context.Context) error {
	opts, err := redis.ParseURL(c.ConnectionString)
	if err != nil {
		return fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)

	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}

	c.client = client
	c.Connected = true

	return nil
}

func (c *Connection) GetClient(ctx context.Context) (*redis.Client, error) {
	if c.client == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return c.client, nil
}
