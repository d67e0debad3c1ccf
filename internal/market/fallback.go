package market

import (
	"time"

	"github.com/leaf468/memehack/internal/models"
)

// FallbackSnapshots returns the static dataset used when every market fetch
// in a batch fails, so downstream components always have non-empty input.
// Values are representative, not live.
func FallbackSnapshots(now time.Time) []models.MarketSnapshot {
	rows := []models.MarketSnapshot{
		{Symbol: "DOGE", Name: "Dogecoin", Price: 0.14, Change24h: 2.5, Change1h: 0.5, Volume24h: 1e9, MarketCap: 20e9, Chain: "multi"},
		{Symbol: "SHIB", Name: "Shiba Inu", Price: 0.000025, Change24h: -1.2, Change1h: -0.3, Volume24h: 5e8, MarketCap: 15e9, Chain: "ethereum"},
		{Symbol: "PEPE", Name: "Pepe", Price: 0.000012, Change24h: 8.5, Change1h: 1.2, Volume24h: 8e8, MarketCap: 5e9, Chain: "ethereum"},
		{Symbol: "WIF", Name: "dogwifhat", Price: 2.5, Change24h: -5.2, Change1h: -1.1, Volume24h: 3e8, MarketCap: 2.5e9, Chain: "solana"},
		{Symbol: "BONK", Name: "Bonk", Price: 0.00003, Change24h: 1.5, Change1h: 0.2, Volume24h: 2e8, MarketCap: 2e9, Chain: "solana"},
		{Symbol: "FLOKI", Name: "Floki", Price: 0.0002, Change24h: -2.1, Change1h: -0.4, Volume24h: 1.5e8, MarketCap: 1.8e9, Chain: "ethereum"},
		{Symbol: "MOG", Name: "Mog Coin", Price: 0.0000018, Change24h: 3.2, Change1h: 0.8, Volume24h: 8e7, MarketCap: 7e8, Chain: "ethereum"},
		{Symbol: "BRETT", Name: "Brett", Price: 0.12, Change24h: 1.8, Change1h: 0.3, Volume24h: 5e7, MarketCap: 1.2e9, Chain: "base"},
		{Symbol: "POPCAT", Name: "Popcat", Price: 0.8, Change24h: -2.5, Change1h: -0.5, Volume24h: 4e7, MarketCap: 8e8, Chain: "solana"},
		{Symbol: "NEIRO", Name: "Neiro", Price: 0.0012, Change24h: 5.5, Change1h: 1.0, Volume24h: 6e7, MarketCap: 5e8, Chain: "ethereum"},
		{Symbol: "MEME", Name: "Memecoin", Price: 0.012, Change24h: -1.5, Change1h: -0.2, Volume24h: 3e7, MarketCap: 4e8, Chain: "ethereum"},
		{Symbol: "TURBO", Name: "Turbo", Price: 0.008, Change24h: 4.2, Change1h: 0.6, Volume24h: 2.5e7, MarketCap: 3.5e8, Chain: "ethereum"},
		{Symbol: "LADYS", Name: "Milady Meme Coin", Price: 0.00000015, Change24h: -3.1, Change1h: -0.7, Volume24h: 2e7, MarketCap: 1.5e8, Chain: "ethereum"},
		{Symbol: "SPX", Name: "SPX6900", Price: 0.85, Change24h: 6.5, Change1h: 1.5, Volume24h: 5e7, MarketCap: 8e8, Chain: "ethereum"},
	}

	for i := range rows {
		rows[i].BuySellRatio = 1
		rows[i].Trend = models.TrendFromChange(rows[i].Change24h)
		rows[i].FetchedAt = now
	}
	return rows
}
