package finance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// StatementCache keeps recently read statements in Redis so repeated
// retrievals skip the database. Generation always writes through.
type StatementCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatementCache constructs a StatementCache. A nil client disables
// caching.
func NewStatementCache(client *redis.Client, ttl time.Duration) *StatementCache {
	return &StatementCache{client: client, ttl: ttl}
}

func cacheKey(period shared.Period) string {
	return "pnl:" + period.String()
}

// Get returns the cached statement, or false when missing or on any cache
// error. Cache failures never fail a retrieval.
func (c *StatementCache) Get(ctx context.Context, period shared.Period) (Statement, bool) {
	if c == nil || c.client == nil {
		return Statement{}, false
	}
	payload, err := c.client.Get(ctx, cacheKey(period)).Bytes()
	if err != nil {
		return Statement{}, false
	}
	var st Statement
	if err := json.Unmarshal(payload, &st); err != nil {
		return Statement{}, false
	}
	return st, true
}

// Set stores the statement under its period key. When the write fails the
// key is dropped instead, so a previously cached statement cannot outlive a
// regeneration until the TTL expires.
func (c *StatementCache) Set(ctx context.Context, st Statement) {
	if c == nil || c.client == nil {
		return
	}
	key := cacheKey(st.Period)
	payload, err := json.Marshal(st)
	if err != nil {
		_ = c.client.Del(ctx, key).Err()
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		_ = c.client.Del(ctx, key).Err()
	}
}

// Invalidate drops the cached statement for a period.
func (c *StatementCache) Invalidate(ctx context.Context, period shared.Period) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKey(period)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return
	}
}
