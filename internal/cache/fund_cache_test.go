package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/foodbridge/donation-api/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisFundCache, *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisFundCache(client, time.Minute), server
}

func TestNopFundCache(t *testing.T) {
	var c FundCache = NopFundCache{}
	ctx := context.Background()

	c.SetTotal(ctx, 500)
	_, ok := c.GetTotal(ctx)
	assert.False(t, ok)

	c.SetRecent(ctx, []models.Fund{{PaymentID: "pay_1"}})
	_, ok = c.GetRecent(ctx)
	assert.False(t, ok)

	assert.NoError(t, c.Invalidate(ctx))
}

func TestRedisFundCache_UnreachableServerMisses(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisFundCache(client, time.Minute)
	ctx := context.Background()

	c.SetTotal(ctx, 500)
	_, ok := c.GetTotal(ctx)
	assert.False(t, ok)

	_, ok = c.GetRecent(ctx)
	assert.False(t, ok)

	assert.Error(t, c.Invalidate(ctx))
}

func TestRedisFundCache_TotalAndRecent(t *testing.T) {
	c, server := newTestRedisCache(t)
	ctx := context.Background()

	_, ok := c.GetTotal(ctx)
	assert.False(t, ok)

	c.SetTotal(ctx, 12345)
	total, ok := c.GetTotal(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(12345), total)

	donor := "Meera"
	funds := []models.Fund{
		{ID: 2, Amount: 500, Currency: "INR", DonorName: &donor, PaymentID: "pay_2"},
		{ID: 1, Amount: 100, Currency: "INR", PaymentID: "pay_1"},
	}
	c.SetRecent(ctx, funds)
	recent, ok := c.GetRecent(ctx)
	require.True(t, ok)
	require.Len(t, recent, 2)
	assert.Equal(t, "pay_2", recent[0].PaymentID)
	assert.Equal(t, int64(500), recent[0].Amount)
	require.NotNil(t, recent[0].DonorName)
	assert.Equal(t, donor, *recent[0].DonorName)
	assert.Nil(t, recent[1].DonorName)

	assert.Equal(t, time.Minute, server.TTL(keyFundTotal))
	assert.Equal(t, time.Minute, server.TTL(keyFundRecent))
}

func TestRedisFundCache_InvalidateDropsBothKeys(t *testing.T) {
	c, server := newTestRedisCache(t)
	ctx := context.Background()

	c.SetTotal(ctx, 100)
	c.SetRecent(ctx, []models.Fund{{PaymentID: "pay_1", Amount: 100}})
	require.True(t, server.Exists(keyFundTotal))
	require.True(t, server.Exists(keyFundRecent))

	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, server.Exists(keyFundTotal))
	assert.False(t, server.Exists(keyFundRecent))

	_, ok := c.GetTotal(ctx)
	assert.False(t, ok)
	_, ok = c.GetRecent(ctx)
	assert.False(t, ok)
}

func TestRedisFundCache_ExpiresAfterTTL(t *testing.T) {
	c, server := newTestRedisCache(t)
	ctx := context.Background()

	c.SetTotal(ctx, 100)
	server.FastForward(time.Minute + time.Second)

	_, ok := c.GetTotal(ctx)
	assert.False(t, ok)
}

func TestRedisFundCache_CorruptEntryMisses(t *testing.T) {
	c, server := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, server.Set(keyFundTotal, "not-a-number"))
	require.NoError(t, server.Set(keyFundRecent, "{broken"))

	_, ok := c.GetTotal(ctx)
	assert.False(t, ok)
	_, ok = c.GetRecent(ctx)
	assert.False(t, ok)
}
