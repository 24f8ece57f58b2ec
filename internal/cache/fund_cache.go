// Package cache keeps read-mostly fund figures in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/foodbridge/donation-api/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyFundTotal  = "funds:total"
	keyFundRecent = "funds:recent"
)

// FundCache holds the fund total (minor units) and the newest funds. Lookups
// report a miss instead of failing, so a cache outage only costs latency.
type FundCache interface {
	GetTotal(ctx context.Context) (int64, bool)
	SetTotal(ctx context.Context, total int64)
	GetRecent(ctx context.Context) ([]models.Fund, bool)
	SetRecent(ctx context.Context, funds []models.Fund)
	Invalidate(ctx context.Context) error
}

// RedisFundCache stores the fund total as a decimal string and the newest
// funds as a JSON array, both with the same TTL.
type RedisFundCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFundCache creates a new RedisFundCache
func NewRedisFundCache(client *redis.Client, ttl time.Duration) *RedisFundCache {
	return &RedisFundCache{client: client, ttl: ttl}
}

// GetTotal returns the cached total in minor units
func (c *RedisFundCache) GetTotal(ctx context.Context) (int64, bool) {
	value, err := c.client.Get(ctx, keyFundTotal).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Fund cache: failed to read total: %v", err)
		}
		return 0, false
	}
	total, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return total, true
}

// SetTotal caches the total in minor units
func (c *RedisFundCache) SetTotal(ctx context.Context, total int64) {
	if err := c.client.Set(ctx, keyFundTotal, strconv.FormatInt(total, 10), c.ttl).Err(); err != nil {
		log.Printf("Fund cache: failed to store total: %v", err)
	}
}

// GetRecent returns the cached newest funds
func (c *RedisFundCache) GetRecent(ctx context.Context) ([]models.Fund, bool) {
	value, err := c.client.Get(ctx, keyFundRecent).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Fund cache: failed to read recent funds: %v", err)
		}
		return nil, false
	}
	var funds []models.Fund
	if err := json.Unmarshal(value, &funds); err != nil {
		return nil, false
	}
	return funds, true
}

// SetRecent caches the newest funds
func (c *RedisFundCache) SetRecent(ctx context.Context, funds []models.Fund) {
	body, err := json.Marshal(funds)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyFundRecent, body, c.ttl).Err(); err != nil {
		log.Printf("Fund cache: failed to store recent funds: %v", err)
	}
}

// Invalidate drops both entries. Call it after every new fund.
func (c *RedisFundCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, keyFundTotal, keyFundRecent).Err()
}

// NopFundCache always misses.
type NopFundCache struct{}

func (NopFundCache) GetTotal(context.Context) (int64, bool) {
	return 0, false
}

func (NopFundCache) SetTotal(context.Context, int64) {}

func (NopFundCache) GetRecent(context.Context) ([]models.Fund, bool) {
	return nil, false
}

func (NopFundCache) SetRecent(context.Context, []models.Fund) {}

func (NopFundCache) Invalidate(context.Context) error {
	return nil
}
