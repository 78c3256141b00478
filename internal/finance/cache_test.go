package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

func newTestCache(t *testing.T, ttl time.Duration) (*StatementCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStatementCache(client, ttl), mr
}

func TestStatementCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	period := shared.Period{Month: 3, Year: 2025}
	st := BuildStatement(period,
		Revenue{Sales: dec("10000.00")},
		Costs{Expenses: dec("2000.50"), Salaries: dec("4000.00")},
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	)

	cache.Set(context.Background(), st)

	got, ok := cache.Get(context.Background(), period)
	require.True(t, ok)
	require.Equal(t, st.Period, got.Period)
	require.True(t, got.NetProfit.Equal(st.NetProfit))
	require.True(t, got.GeneratedAt.Equal(st.GeneratedAt))
}

func TestStatementCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	_, ok := cache.Get(context.Background(), shared.Period{Month: 1, Year: 2025})
	require.False(t, ok)
}

func TestStatementCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	st := BuildStatement(shared.Period{Month: 2, Year: 2025}, Revenue{}, Costs{}, time.Now())
	cache.Set(context.Background(), st)

	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(context.Background(), st.Period)
	require.False(t, ok)
}

func TestStatementCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	st := BuildStatement(shared.Period{Month: 9, Year: 2025}, Revenue{Sales: dec("5.00")}, Costs{}, time.Now())
	cache.Set(context.Background(), st)
	cache.Invalidate(context.Background(), st.Period)

	_, ok := cache.Get(context.Background(), st.Period)
	require.False(t, ok)
}

// refuseWrites fails SET commands while letting everything else through.
type refuseWrites struct{}

func (refuseWrites) DialHook(next redis.DialHook) redis.DialHook { return next }

func (refuseWrites) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "set" {
			return errors.New("write refused")
		}
		return next(ctx, cmd)
	}
}

func (refuseWrites) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestStatementCacheSetFailureDropsStaleEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewStatementCache(client, time.Minute)

	period := shared.Period{Month: 3, Year: 2025}
	stale := BuildStatement(period, Revenue{Sales: dec("1.00")}, Costs{}, time.Now())
	cache.Set(context.Background(), stale)
	_, ok := cache.Get(context.Background(), period)
	require.True(t, ok)

	client.AddHook(refuseWrites{})
	fresh := BuildStatement(period, Revenue{Sales: dec("2.00")}, Costs{}, time.Now())
	cache.Set(context.Background(), fresh)

	// The failed write must not leave the old statement behind.
	_, ok = cache.Get(context.Background(), period)
	require.False(t, ok)
}

func TestStatementCacheNilClient(t *testing.T) {
	cache := NewStatementCache(nil, time.Minute)
	st := BuildStatement(shared.Period{Month: 4, Year: 2025}, Revenue{}, Costs{}, time.Now())
	cache.Set(context.Background(), st)
	_, ok := cache.Get(context.Background(), st.Period)
	require.False(t, ok)
}
