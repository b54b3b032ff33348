// Package pricefeed provides the external BTC price source collaborator.
//
// A Source returns a single positive spot price or ErrUnavailable; callers
// never receive a zero or negative price. The canonical wiring is a
// FailoverSource over the primary and fallback endpoints, wrapped in a
// CachedSource with an explicit TTL.
package pricefeed

import (
	"context"
	"errors"

	"github.com/eci-capital/condo-evaluator/internal/config"
	"go.uber.org/zap"
)

// ErrUnavailable indicates no usable price could be obtained from any
// configured source.
var ErrUnavailable = errors.New("no BTC price available")

// Source supplies the current BTC price in USD.
type Source interface {
	CurrentPrice(ctx context.Context) (float64, error)
}

// NewFromConfig assembles the configured source chain: a static price if
// set, otherwise primary with fallback, wrapped in the configured cache.
func NewFromConfig(cfg config.PriceFeedConfig, logger *zap.Logger) Source {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.StaticPrice > 0 {
		return NewStaticSource(cfg.StaticPrice)
	}

	var sources []Source
	if cfg.PrimaryURL != "" {
		sources = append(sources, NewBinanceSource(cfg.PrimaryURL, cfg.Timeout()))
	}
	if cfg.FallbackURL != "" {
		sources = append(sources, NewCoinGeckoSource(cfg.FallbackURL, cfg.Timeout()))
	}

	var source Source
	switch len(sources) {
	case 0:
		return unavailableSource{}
	case 1:
		source = sources[0]
	default:
		source = NewFailoverSource(logger, sources...)
	}

	switch cfg.CacheBackend {
	case "redis":
		if cfg.RedisAddress != "" {
			return NewCachedSource(logger, source, NewRedisCache(cfg.RedisAddress), cfg.CacheTTL())
		}
		logger.Warn("redis cache backend configured without an address, falling back to memory",
			zap.String("op", "pricefeed.NewFromConfig"),
		)
		return NewCachedSource(logger, source, NewMemoryCache(), cfg.CacheTTL())
	case "none":
		return source
	default:
		return NewCachedSource(logger, source, NewMemoryCache(), cfg.CacheTTL())
	}
}

// unavailableSource always fails; used when nothing is configured.
type unavailableSource struct{}

func (unavailableSource) CurrentPrice(context.Context) (float64, error) {
	return 0, ErrUnavailable
}
