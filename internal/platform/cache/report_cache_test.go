package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	Total string `json:"total"`
}

func newTestCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Minute), mr
}

func TestFetchJSONCachesUntilBump(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return view{Total: "150"}, nil
	}

	key, err := c.BuildKey(ctx, "outstanding", "list")
	require.NoError(t, err)
	assert.Equal(t, "shop_ledger:reports:outstanding:list:v1", key)

	var got view
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "150", got.Total)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	require.NoError(t, c.Bump(ctx))
	key, err = c.BuildKey(ctx, "outstanding", "list")
	require.NoError(t, err)
	assert.Equal(t, "shop_ledger:reports:outstanding:list:v2", key)

	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 2, calls)
}

func TestFetchJSONDoesNotCacheLoaderErrors(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	boom := errors.New("boom")

	key, err := c.BuildKey(ctx, "outstanding", "report")
	require.NoError(t, err)

	var got view
	err = c.FetchJSON(ctx, key, &got, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(key))
}

func TestFetchJSONReportsRedisFailure(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.SetError("LOADING")

	var got view
	err := c.FetchJSON(ctx, "k", &got, func(context.Context) (any, error) { return view{}, nil })
	assert.Error(t, err)
}

func TestNilCacheFallsThrough(t *testing.T) {
	ctx := context.Background()
	var c *ReportCache

	key, err := c.BuildKey(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "shop_ledger:reports:a:b", key)

	var got view
	require.NoError(t, c.FetchJSON(ctx, key, &got, func(context.Context) (any, error) { return view{Total: "1"}, nil }))
	assert.Equal(t, "1", got.Total)
	assert.NoError(t, c.Bump(ctx))
}
