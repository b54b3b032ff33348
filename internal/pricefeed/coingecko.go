package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// CoinGeckoSource fetches the BTC spot price in USD from the CoinGecko
// simple-price endpoint. Used as the fallback when the primary source
// fails or returns an invalid price.
type CoinGeckoSource struct {
	client *resty.Client
	url    string
}

// NewCoinGeckoSource returns a source for the given simple-price URL with
// the given per-request timeout.
func NewCoinGeckoSource(url string, timeout time.Duration) *CoinGeckoSource {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &CoinGeckoSource{client: client, url: url}
}

type coinGeckoPrice struct {
	Bitcoin struct {
		USD float64 `json:"usd"`
	} `json:"bitcoin"`
}

// CurrentPrice implements Source.
func (s *CoinGeckoSource) CurrentPrice(ctx context.Context) (float64, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return 0, fmt.Errorf("coingecko price fetch failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("coingecko price fetch returned status %d", resp.StatusCode())
	}

	var body coinGeckoPrice
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return 0, fmt.Errorf("coingecko price response unreadable: %w", err)
	}
	if body.Bitcoin.USD <= 0 {
		return 0, fmt.Errorf("coingecko returned invalid price %.2f: %w", body.Bitcoin.USD, ErrUnavailable)
	}
	return body.Bitcoin.USD, nil
}
