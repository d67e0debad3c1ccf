package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leaf468/memehack/internal/models"
)

// DOGE lacks DEX coverage, so it resolves through the CoinPaprika ticker.
const dogeCoinPaprikaID = "doge-dogecoin"

// CoinPaprikaSource covers symbols the DEX aggregator cannot, via the free
// CoinPaprika ticker API. The ticker carries no liquidity or transaction
// breakdown, so those fields normalize to zero and the buy/sell ratio to 1.
type CoinPaprikaSource struct {
	baseURL    string
	httpClient *resty.Client
	ids        map[string]string
}

// NewCoinPaprikaSource creates the secondary ticker source.
func NewCoinPaprikaSource(client *resty.Client, baseURL string) *CoinPaprikaSource {
	if baseURL == "" {
		baseURL = "https://api.coinpaprika.com"
	}
	return &CoinPaprikaSource{
		baseURL:    baseURL,
		httpClient: client,
		ids:        map[string]string{"DOGE": dogeCoinPaprikaID},
	}
}

func (c *CoinPaprikaSource) Name() string { return "coinpaprika" }

func (c *CoinPaprikaSource) Supports(symbol string) bool {
	_, ok := c.ids[symbol]
	return ok
}

// Fetch implements Source.
func (c *CoinPaprikaSource) Fetch(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	id, ok := c.ids[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %s has no coinpaprika id", symbol)
	}

	url := fmt.Sprintf("%s/v1/tickers/%s", c.baseURL, id)

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var ticker struct {
		Name   string `json:"name"`
		Quotes struct {
			USD struct {
				Price            float64 `json:"price"`
				PercentChange1h  float64 `json:"percent_change_1h"`
				PercentChange24h float64 `json:"percent_change_24h"`
				Volume24h        float64 `json:"volume_24h"`
				MarketCap        float64 `json:"market_cap"`
			} `json:"USD"`
		} `json:"quotes"`
	}
	if err := json.Unmarshal(resp.Body(), &ticker); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	quote := ticker.Quotes.USD
	return &models.MarketSnapshot{
		Symbol:       symbol,
		Name:         ticker.Name,
		Price:        quote.Price,
		Change24h:    quote.PercentChange24h,
		Change1h:     quote.PercentChange1h,
		Volume24h:    quote.Volume24h,
		MarketCap:    quote.MarketCap,
		Liquidity:    0,
		Txns24h:      0,
		BuySellRatio: 1,
		Trend:        models.TrendFromChange(quote.PercentChange24h),
		Chain:        "multi",
		FetchedAt:    time.Now(),
	}, nil
}
