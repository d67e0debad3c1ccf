package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leaf468/memehack/internal/models"
)

// DexPair is the subset of a DexScreener trading pair we read.
type DexPair struct {
	ChainID   string `json:"chainId"`
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUsd string `json:"priceUsd"`
	Txns     struct {
		H24 struct {
			Buys  int `json:"buys"`
			Sells int `json:"sells"`
		} `json:"h24"`
	} `json:"txns"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	PriceChange struct {
		H24 float64 `json:"h24"`
		H1  float64 `json:"h1"`
	} `json:"priceChange"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	FDV       float64 `json:"fdv"`
	MarketCap float64 `json:"marketCap"`
	Info      struct {
		ImageURL string `json:"imageUrl"`
	} `json:"info"`
}

// DexScreenerSource queries the DexScreener token endpoint by contract
// address and normalizes the highest-liquidity pair.
type DexScreenerSource struct {
	baseURL    string
	httpClient *resty.Client
	tokens     map[string]TokenRef
}

// NewDexScreenerSource creates the primary market data source.
func NewDexScreenerSource(client *resty.Client, baseURL string) *DexScreenerSource {
	if baseURL == "" {
		baseURL = "https://api.dexscreener.com"
	}
	return &DexScreenerSource{
		baseURL:    baseURL,
		httpClient: client,
		tokens:     memeTokens,
	}
}

func (d *DexScreenerSource) Name() string { return "dexscreener" }

func (d *DexScreenerSource) Supports(symbol string) bool {
	_, ok := d.tokens[symbol]
	return ok
}

// Fetch implements Source.
func (d *DexScreenerSource) Fetch(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	ref, ok := d.tokens[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %s has no contract address mapping", symbol)
	}

	url := fmt.Sprintf("%s/latest/dex/tokens/%s", d.baseURL, ref.Address)

	resp, err := d.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result struct {
		Pairs []DexPair `json:"pairs"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Pairs) == 0 {
		return nil, fmt.Errorf("no trading pairs for %s", symbol)
	}

	// Select the pair with the deepest liquidity.
	best := result.Pairs[0]
	for _, pair := range result.Pairs[1:] {
		if pair.Liquidity.USD > best.Liquidity.USD {
			best = pair
		}
	}

	price, err := strconv.ParseFloat(best.PriceUsd, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}

	marketCap := best.MarketCap
	if marketCap == 0 {
		marketCap = best.FDV
	}

	return &models.MarketSnapshot{
		Symbol:       symbol,
		Name:         best.BaseToken.Name,
		Price:        price,
		Change24h:    best.PriceChange.H24,
		Change1h:     best.PriceChange.H1,
		Volume24h:    best.Volume.H24,
		MarketCap:    marketCap,
		Liquidity:    best.Liquidity.USD,
		Txns24h:      best.Txns.H24.Buys + best.Txns.H24.Sells,
		BuySellRatio: buySellRatio(best.Txns.H24.Buys, best.Txns.H24.Sells),
		Trend:        models.TrendFromChange(best.PriceChange.H24),
		ImageURL:     best.Info.ImageURL,
		Chain:        ref.Chain,
		FetchedAt:    time.Now(),
	}, nil
}
