// Package sentiment derives per-token 0-100 sentiment values from a single
// shared fear/greed style index. Niche tokens amplify the broad-market swing
// through a fixed volatility multiplier; the symmetry of that amplification
// is a tunable policy assumption, not a validated signal model.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/leaf468/memehack/internal/cache"
	"github.com/leaf468/memehack/internal/models"
)

// DefaultVolatility are the per-symbol multipliers applied to the baseline
// deviation from neutral. They are tuning constants with no stated
// derivation; change them via NewFetcherWithTables if needed.
var DefaultVolatility = map[string]float64{
	"DOGE":  1.1, // DOGE is the steadiest of the set
	"SHIB":  1.3,
	"PEPE":  1.5,
	"WIF":   1.4,
	"BONK":  1.5,
	"FLOKI": 1.3,
	"MOG":   1.8,
	"TURBO": 1.6,
}

// DefaultSentiment is served when the index itself is unreachable.
var DefaultSentiment = map[string]float64{
	"BTC":   50,
	"ETH":   48,
	"DOGE":  55,
	"SHIB":  52,
	"PEPE":  58,
	"WIF":   56,
	"BONK":  54,
	"FLOKI": 53,
}

const baselineCacheKey = "sentiment:baseline"

type baselineValue struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"`
}

// Fetcher reads the Alternative.me fear/greed index at most once per cache
// window and derives per-symbol values from it. It never returns an error:
// an unreachable index degrades to neutral defaults.
type Fetcher struct {
	baseURL    string
	httpClient *resty.Client
	cache      cache.TTL
	volatility map[string]float64
	defaults   map[string]float64
	log        *slog.Logger
}

// NewFetcher creates a sentiment fetcher with the default tables.
func NewFetcher(client *resty.Client, baseURL string, c cache.TTL, log *slog.Logger) *Fetcher {
	return NewFetcherWithTables(client, baseURL, c, log, DefaultVolatility, DefaultSentiment)
}

// NewFetcherWithTables allows overriding the policy tables.
func NewFetcherWithTables(client *resty.Client, baseURL string, c cache.TTL, log *slog.Logger, volatility, defaults map[string]float64) *Fetcher {
	if baseURL == "" {
		baseURL = "https://api.alternative.me"
	}
	return &Fetcher{
		baseURL:    baseURL,
		httpClient: client,
		cache:      c,
		volatility: volatility,
		defaults:   defaults,
		log:        log,
	}
}

// Baseline returns the shared index value, its classification, and whether
// the reading came from the live index (directly or via cache) as opposed to
// the neutral fallback.
func (f *Fetcher) Baseline(ctx context.Context) (float64, string, bool) {
	var cached baselineValue
	if found, err := f.cache.Get(ctx, baselineCacheKey, &cached); err == nil && found {
		return cached.Value, cached.Classification, true
	}

	value, classification, err := f.fetchIndex(ctx)
	if err != nil {
		f.log.Error("fear/greed index unavailable, serving neutral defaults", "error", err)
		return 50, "Neutral", false
	}

	if err := f.cache.Set(ctx, baselineCacheKey, baselineValue{Value: value, Classification: classification}); err != nil {
		f.log.Error("failed to cache fear/greed baseline", "error", err)
	}
	return value, classification, true
}

func (f *Fetcher) fetchIndex(ctx context.Context) (float64, string, error) {
	url := f.baseURL + "/fng/?limit=1"

	resp, err := f.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return 0, "", fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result struct {
		Data []struct {
			Value               string `json:"value"`
			ValueClassification string `json:"value_classification"`
		} `json:"data"`
		Metadata struct {
			Error *string `json:"error"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Metadata.Error != nil || len(result.Data) == 0 {
		return 0, "", fmt.Errorf("index returned no data")
	}

	value, err := strconv.ParseFloat(result.Data[0].Value, 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse index value: %w", err)
	}
	return value, result.Data[0].ValueClassification, nil
}

// Derive computes a per-symbol value from a baseline reading:
// clamp(0,100, 50 + (baseline-50)*volatility). Symbols without a multiplier
// get exactly 50 with the default source tag.
func Derive(symbol string, baseline float64, volatility map[string]float64) models.SentimentValue {
	mult, ok := volatility[symbol]
	if !ok {
		return models.SentimentValue{
			Symbol:         symbol,
			Value:          50,
			Classification: "Neutral",
			Source:         models.SentimentDefault,
		}
	}

	value := math.Round(50 + (baseline-50)*mult)
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	return models.SentimentValue{
		Symbol:         symbol,
		Value:          value,
		Classification: Classify(value),
		Source:         models.SentimentDerived,
	}
}

// ForSymbol returns the sentiment value for one token this cycle.
func (f *Fetcher) ForSymbol(ctx context.Context, symbol string) models.SentimentValue {
	baseline, _, live := f.Baseline(ctx)
	if live {
		return Derive(symbol, baseline, f.volatility)
	}

	value, ok := f.defaults[symbol]
	if !ok {
		value = 50
	}
	return models.SentimentValue{
		Symbol:         symbol,
		Value:          value,
		Classification: "Neutral",
		Source:         models.SentimentDefault,
	}
}

// ForSymbols resolves a batch against a single baseline read.
func (f *Fetcher) ForSymbols(ctx context.Context, symbols []string) map[string]models.SentimentValue {
	out := make(map[string]models.SentimentValue, len(symbols))
	for _, symbol := range symbols {
		out[symbol] = f.ForSymbol(ctx, symbol)
	}
	return out
}

// Classify maps a 0-100 sentiment value to its label.
func Classify(value float64) string {
	switch {
	case value >= 55:
		return "Bullish"
	case value >= 45:
		return "Neutral"
	default:
		return "Bearish"
	}
}
