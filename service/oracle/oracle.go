package oracle

import (
	"context"
	"fmt"
	"time"

	"lever/core"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Config price oracle config
type Config struct {
	// Endpoint base url of the price feed
	Endpoint string `json:"endpoint" valid:"required"`
	// FreshWindow max acceptable age of a reading, default one hour
	FreshWindow time.Duration `json:"fresh_window"`
}

type priceOracleService struct {
	client *resty.Client
	window time.Duration
}

// New new price oracle service backed by an http price feed
func New(cfg Config) core.IPriceOracleService {
	window := cfg.FreshWindow
	if window <= 0 {
		window = time.Hour
	}

	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(10 * time.Second)

	return &priceOracleService{
		client: client,
		window: window,
	}
}

func (s *priceOracleService) GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	var ticker core.PriceTicker

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("asset", assetID).
		SetResult(&ticker).
		Get("/prices")
	if err != nil {
		return decimal.Zero, err
	}

	if !resp.IsSuccess() {
		return decimal.Zero, fmt.Errorf("price feed status %d", resp.StatusCode())
	}

	return Validate(&ticker, s.window, time.Now())
}

// Validate applies the oracle contract to a reading: a non-positive value
// is invalid, and data older than the freshness window must not be used to
// price a position.
func Validate(ticker *core.PriceTicker, window time.Duration, now time.Time) (decimal.Decimal, error) {
	if !ticker.Price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}

	if now.Sub(ticker.UpdatedAt) > window {
		return decimal.Zero, core.ErrStalePrice
	}

	return ticker.Price, nil
}
