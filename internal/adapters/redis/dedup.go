package redis

import (
	"context"
	"fmt"
	"time"
)

// SignalDedup short-circuits redelivered prepared/rejected transfer
// signals before they reach a row lock in Postgres. A miss here is not
// an error — every caller re-validates against the Postgres unique
// index, this cache only saves the round trip on the common case.
type SignalDedup struct {
	conn *Connection
	ttl  time.Duration
}

func NewSignalDedup(conn *Connection, ttl time.Duration) *SignalDedup {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &SignalDedup{conn: conn, ttl: ttl}
}

func key(payeeID, requestID, transferID int64) string {
	return fmt.Sprintf("swpt-payments:signal:%d:%d:%d", payeeID, requestID, transferID)
}

// SeenBefore records (payeeID, requestID, transferID) and reports
// whether it had already been recorded. Errors talking to Redis are
// treated as "not seen" so the coordinator falls through to Postgres.
func (d *SignalDedup) SeenBefore(ctx context.Context, payeeID, requestID, transferID int64) bool {
	client, err := d.conn.GetClient(ctx)
	if err != nil {
		return false
	}

	ok, err := client.SetNX(ctx, key(payeeID, requestID, transferID), 1, d.ttl).Result()
	if err != nil {
		return false
	}

	return !ok
}
