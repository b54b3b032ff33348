package pricefeed

import (
	"context"

	"go.uber.org/zap"
)

// FailoverSource tries each wrapped source in order and returns the first
// usable price. No retries happen within a single lookup; a source either
// answers or the next one is tried.
type FailoverSource struct {
	logger  *zap.Logger
	sources []Source
}

// NewFailoverSource wraps the given sources in priority order.
func NewFailoverSource(logger *zap.Logger, sources ...Source) *FailoverSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FailoverSource{logger: logger, sources: sources}
}

// CurrentPrice implements Source.
func (s *FailoverSource) CurrentPrice(ctx context.Context) (float64, error) {
	for i, source := range s.sources {
		price, err := source.CurrentPrice(ctx)
		if err == nil {
			return price, nil
		}
		s.logger.Warn("price source failed",
			zap.String("op", "pricefeed.CurrentPrice"),
			zap.Int("source", i),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	return 0, ErrUnavailable
}
