package market

import (
	"context"
	"sort"
	"sync"

	"github.com/leaf468/memehack/internal/models"
)

// Logger is the subset of slog the collector needs.
type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// Source fetches one token's market snapshot from one upstream API.
type Source interface {
	Name() string
	Supports(symbol string) bool
	Fetch(ctx context.Context, symbol string) (*models.MarketSnapshot, error)
}

// Collector aggregates multiple market data sources. For each symbol the
// sources are tried in order; the first that answers wins. A symbol every
// source fails on is omitted from the batch for this cycle, not retried.
type Collector struct {
	sources []Source
	logger  Logger
}

// NewCollector creates a collector over the given sources, in priority order.
func NewCollector(sources []Source, logger Logger) *Collector {
	return &Collector{sources: sources, logger: logger}
}

// FetchOne resolves a single symbol through the source chain.
func (c *Collector) FetchOne(ctx context.Context, symbol string) (*models.MarketSnapshot, bool) {
	for _, source := range c.sources {
		if !source.Supports(symbol) {
			continue
		}

		snap, err := source.Fetch(ctx, symbol)
		if err != nil {
			c.logger.Error("failed to fetch market data", "source", source.Name(), "symbol", symbol, "error", err)
			continue
		}
		if snap != nil {
			c.logger.Info("fetched market data", "source", source.Name(), "symbol", symbol)
			return snap, true
		}
	}
	return nil, false
}

// FetchBatch fans out one goroutine per symbol and waits for all of them.
// The result is sorted by market cap descending and may be empty if every
// fetch failed; the caller decides whether to fall back to static data.
func (c *Collector) FetchBatch(ctx context.Context, symbols []string) []models.MarketSnapshot {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []models.MarketSnapshot
	)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			snap, ok := c.FetchOne(ctx, symbol)
			if !ok {
				return
			}

			mu.Lock()
			results = append(results, *snap)
			mu.Unlock()
		}(symbol)
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].MarketCap > results[j].MarketCap
	})
	return results
}

// buySellRatio guards both sides against zero: an empty side counts as one
// transaction so the ratio stays finite.
func buySellRatio(buys, sells int) float64 {
	if buys == 0 {
		buys = 1
	}
	if sells == 0 {
		sells = 1
	}
	return float64(buys) / float64(sells)
}
