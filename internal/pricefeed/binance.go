package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// BinanceSource fetches the BTC spot price in USD (using USDT as a proxy)
// from the Binance ticker endpoint.
type BinanceSource struct {
	client *resty.Client
	url    string
}

// NewBinanceSource returns a source for the given ticker URL with the given
// per-request timeout.
func NewBinanceSource(url string, timeout time.Duration) *BinanceSource {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &BinanceSource{client: client, url: url}
}

type binanceTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// CurrentPrice implements Source.
func (s *BinanceSource) CurrentPrice(ctx context.Context) (float64, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return 0, fmt.Errorf("binance price fetch failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("binance price fetch returned status %d", resp.StatusCode())
	}

	var ticker binanceTicker
	if err := json.Unmarshal(resp.Body(), &ticker); err != nil {
		return 0, fmt.Errorf("binance price response unreadable: %w", err)
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("binance price %q unparsable: %w", ticker.Price, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("binance returned invalid price %.2f: %w", price, ErrUnavailable)
	}
	return price, nil
}
