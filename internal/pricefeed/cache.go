package pricefeed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisPriceKey is the key the cached BTC price is stored under.
const redisPriceKey = "condo-evaluator:btc-price"

// Cache stores a single price with an expiry controlled by the caller.
type Cache interface {
	Get(ctx context.Context) (price float64, ok bool, err error)
	Set(ctx context.Context, price float64, ttl time.Duration) error
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu      sync.Mutex
	price   float64
	expires time.Time
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get implements Cache.
func (c *MemoryCache) Get(context.Context) (float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expires.IsZero() || time.Now().After(c.expires) {
		return 0, false, nil
	}
	return c.price, true, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, price float64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.price = price
	c.expires = time.Now().Add(ttl)
	return nil
}

// RedisCache is a Cache backed by a Redis instance, for sharing one fetched
// price across processes.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the given Redis address.
func NewRedisCache(address string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: address}),
	}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context) (float64, bool, error) {
	price, err := c.client.Get(ctx, redisPriceKey).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return price, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, price float64, ttl time.Duration) error {
	return c.client.Set(ctx, redisPriceKey, price, ttl).Err()
}

// CachedSource wraps a Source with a Cache. A fresh cached price is served
// without a network round trip; cache failures degrade to a direct fetch.
type CachedSource struct {
	logger *zap.Logger
	source Source
	cache  Cache
	ttl    time.Duration
}

// NewCachedSource wraps source with cache using the given TTL.
func NewCachedSource(logger *zap.Logger, source Source, cache Cache, ttl time.Duration) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{logger: logger, source: source, cache: cache, ttl: ttl}
}

// CurrentPrice implements Source.
func (s *CachedSource) CurrentPrice(ctx context.Context) (float64, error) {
	price, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("price cache read failed",
			zap.String("op", "pricefeed.CachedSource.CurrentPrice"),
			zap.Error(err),
		)
	} else if ok {
		return price, nil
	}

	price, err = s.source.CurrentPrice(ctx)
	if err != nil {
		return 0, err
	}

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, price, s.ttl); err != nil {
			s.logger.Warn("price cache write failed",
				zap.String("op", "pricefeed.CachedSource.CurrentPrice"),
				zap.Error(err),
			)
		}
	}
	return price, nil
}
