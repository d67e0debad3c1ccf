package market

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/leaf468/memehack/internal/models"
)

// BinanceSource reads 24h ticker statistics for symbols with an exchange
// listing. It is last in the source chain: a centralized-exchange ticker has
// no liquidity pool or buy/sell breakdown, so it only fills in when the DEX
// sources come up empty.
type BinanceSource struct {
	client *binance.Client
	pairs  map[string]string
}

// NewBinanceSource creates the tertiary ticker source. Public market data
// endpoints need no API key.
func NewBinanceSource(client *binance.Client) *BinanceSource {
	return &BinanceSource{client: client, pairs: binancePairs}
}

func (b *BinanceSource) Name() string { return "binance" }

func (b *BinanceSource) Supports(symbol string) bool {
	_, ok := b.pairs[symbol]
	return ok
}

// Fetch implements Source.
func (b *BinanceSource) Fetch(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	pair, ok := b.pairs[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %s has no binance listing", symbol)
	}

	stats, err := b.client.NewListPriceChangeStatsService().Symbol(pair).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticker stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("empty ticker stats for %s", pair)
	}
	ticker := stats[0]

	price, err := strconv.ParseFloat(ticker.LastPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	change24h, err := strconv.ParseFloat(ticker.PriceChangePercent, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price change: %w", err)
	}
	quoteVolume, err := strconv.ParseFloat(ticker.QuoteVolume, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse volume: %w", err)
	}

	return &models.MarketSnapshot{
		Symbol:       symbol,
		Name:         symbol,
		Price:        price,
		Change24h:    change24h,
		Volume24h:    quoteVolume,
		Txns24h:      int(ticker.Count),
		BuySellRatio: 1,
		Trend:        models.TrendFromChange(change24h),
		Chain:        "cex",
		FetchedAt:    time.Now(),
	}, nil
}
