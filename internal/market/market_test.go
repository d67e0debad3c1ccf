package market

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leaf468/memehack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const pepePairs = `{
  "pairs": [
    {
      "chainId": "ethereum",
      "baseToken": {"address": "0x6982", "name": "Pepe", "symbol": "PEPE"},
      "priceUsd": "0.000011",
      "txns": {"h24": {"buys": 100, "sells": 200}},
      "volume": {"h24": 1000000},
      "priceChange": {"h24": 3.0, "h1": 0.1},
      "liquidity": {"usd": 50000},
      "marketCap": 4000000000
    },
    {
      "chainId": "ethereum",
      "baseToken": {"address": "0x6982", "name": "Pepe", "symbol": "PEPE"},
      "priceUsd": "0.000012",
      "txns": {"h24": {"buys": 900, "sells": 300}},
      "volume": {"h24": 800000000},
      "priceChange": {"h24": 8.5, "h1": 1.2},
      "liquidity": {"usd": 12000000},
      "marketCap": 5000000000
    }
  ]
}`

func TestDexScreenerSource_PicksHighestLiquidityPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pepePairs)
	}))
	defer srv.Close()

	src := NewDexScreenerSource(resty.New(), srv.URL)
	snap, err := src.Fetch(context.Background(), "PEPE")
	require.NoError(t, err)

	assert.Equal(t, "PEPE", snap.Symbol)
	assert.Equal(t, 0.000012, snap.Price)
	assert.Equal(t, 12000000.0, snap.Liquidity)
	assert.Equal(t, 1200, snap.Txns24h)
	assert.InDelta(t, 3.0, snap.BuySellRatio, 1e-9)
	assert.Equal(t, models.TrendBullish, snap.Trend)
	assert.Equal(t, "ethereum", snap.Chain)
}

func TestDexScreenerSource_TrendBuckets(t *testing.T) {
	tests := []struct {
		change float64
		want   models.Trend
	}{
		{8.5, models.TrendBullish},
		{5.0, models.TrendNeutral},
		{0, models.TrendNeutral},
		{-5.0, models.TrendNeutral},
		{-6.1, models.TrendBearish},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.TrendFromChange(tt.change), "change %v", tt.change)
	}
}

func TestBuySellRatio_ZeroGuard(t *testing.T) {
	assert.Equal(t, 1.0, buySellRatio(0, 0))
	assert.Equal(t, 5.0, buySellRatio(5, 0))
	assert.Equal(t, 0.2, buySellRatio(1, 5))
}

func TestDexScreenerSource_NoPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"pairs": []}`)
	}))
	defer srv.Close()

	src := NewDexScreenerSource(resty.New(), srv.URL)
	_, err := src.Fetch(context.Background(), "PEPE")
	assert.Error(t, err)
}

func TestCoinPaprikaSource_NormalizesTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tickers/doge-dogecoin", r.URL.Path)
		fmt.Fprint(w, `{
			"name": "Dogecoin",
			"quotes": {"USD": {
				"price": 0.14,
				"percent_change_1h": 0.5,
				"percent_change_24h": 2.5,
				"volume_24h": 1000000000,
				"market_cap": 20000000000
			}}
		}`)
	}))
	defer srv.Close()

	src := NewCoinPaprikaSource(resty.New(), srv.URL)
	require.True(t, src.Supports("DOGE"))
	require.False(t, src.Supports("PEPE"))

	snap, err := src.Fetch(context.Background(), "DOGE")
	require.NoError(t, err)
	assert.Equal(t, "Dogecoin", snap.Name)
	assert.Equal(t, 0.14, snap.Price)
	assert.Equal(t, 1.0, snap.BuySellRatio)
	assert.Equal(t, 0.0, snap.Liquidity)
	assert.Equal(t, models.TrendNeutral, snap.Trend)
}

type stubSource struct {
	name    string
	covered map[string]*models.MarketSnapshot
	err     error
}

func (s *stubSource) Name() string { return s.name }
func (s *stubSource) Supports(symbol string) bool {
	_, ok := s.covered[symbol]
	return ok
}
func (s *stubSource) Fetch(_ context.Context, symbol string) (*models.MarketSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.covered[symbol], nil
}

func TestCollector_OmitsFailedSymbols(t *testing.T) {
	primary := &stubSource{
		name: "primary",
		covered: map[string]*models.MarketSnapshot{
			"PEPE": {Symbol: "PEPE", MarketCap: 5e9},
			"SHIB": nil, // supported but broken
		},
	}
	secondary := &stubSource{
		name: "secondary",
		covered: map[string]*models.MarketSnapshot{
			"DOGE": {Symbol: "DOGE", MarketCap: 20e9},
		},
	}

	c := NewCollector([]Source{primary, secondary}, testLogger())
	batch := c.FetchBatch(context.Background(), []string{"DOGE", "SHIB", "PEPE", "UNKNOWN"})

	require.Len(t, batch, 2)
	// Sorted by market cap descending.
	assert.Equal(t, "DOGE", batch[0].Symbol)
	assert.Equal(t, "PEPE", batch[1].Symbol)
}

func TestCollector_FallsThroughSourceChain(t *testing.T) {
	broken := &stubSource{
		name:    "broken",
		covered: map[string]*models.MarketSnapshot{"DOGE": {Symbol: "DOGE"}},
		err:     fmt.Errorf("upstream down"),
	}
	working := &stubSource{
		name:    "working",
		covered: map[string]*models.MarketSnapshot{"DOGE": {Symbol: "DOGE", Price: 0.14}},
	}

	c := NewCollector([]Source{broken, working}, testLogger())
	snap, ok := c.FetchOne(context.Background(), "DOGE")
	require.True(t, ok)
	assert.Equal(t, 0.14, snap.Price)
}

func TestFallbackSnapshots(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := FallbackSnapshots(now)

	require.Len(t, rows, 14)
	for _, row := range rows {
		assert.NotEmpty(t, row.Symbol)
		assert.Equal(t, 1.0, row.BuySellRatio)
		assert.Equal(t, models.TrendFromChange(row.Change24h), row.Trend)
		assert.Equal(t, now, row.FetchedAt)
	}
}
