package pricefeed

import "context"

// StaticSource returns a fixed configured price. Used for offline runs and
// for evaluating a deal against a hypothetical price.
type StaticSource struct {
	price float64
}

// NewStaticSource returns a source pinned to price.
func NewStaticSource(price float64) *StaticSource {
	return &StaticSource{price: price}
}

// CurrentPrice implements Source. A non-positive pinned price is reported
// as unavailable rather than handed to the evaluator.
func (s *StaticSource) CurrentPrice(context.Context) (float64, error) {
	if s.price <= 0 {
		return 0, ErrUnavailable
	}
	return s.price, nil
}
