package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leaf468/memehack/internal/cache"
	"github.com/leaf468/memehack/internal/models"
	"golang.org/x/time/rate"
)

// ErrRateLimited marks an HTTP 429 from the community API. Callers treat it
// as a soft failure and fall back to the simulator or cached data.
var ErrRateLimited = errors.New("community api rate limited")

// coingeckoIDs maps symbols to CoinGecko coin ids.
var coingeckoIDs = map[string]string{
	"DOGE":   "dogecoin",
	"SHIB":   "shiba-inu",
	"PEPE":   "pepe",
	"WIF":    "dogwifcoin",
	"BONK":   "bonk",
	"FLOKI":  "floki",
	"BRETT":  "brett",
	"POPCAT": "popcat",
	"MOG":    "mog-coin",
	"NEIRO":  "neiro-3",
	"MEME":   "memecoin-2",
	"TURBO":  "turbo",
	"LADYS":  "milady-meme-coin",
	"SPX":    "spx6900",
}

// CoinGeckoSource reads real community metrics. The free tier allows roughly
// 10-30 calls per minute, so calls ride a shared limiter (a small burst, then
// one call every two seconds) and results sit in a 5-minute cache.
type CoinGeckoSource struct {
	baseURL    string
	httpClient *resty.Client
	cache      cache.TTL
	limiter    *rate.Limiter
	now        func() time.Time
}

// NewCoinGeckoSource creates the real community-metrics source.
func NewCoinGeckoSource(client *resty.Client, baseURL string, c cache.TTL) *CoinGeckoSource {
	if baseURL == "" {
		baseURL = "https://api.coingecko.com"
	}
	return &CoinGeckoSource{
		baseURL:    baseURL,
		httpClient: client,
		cache:      c,
		limiter:    rate.NewLimiter(rate.Every(2*time.Second), 3),
		now:        time.Now,
	}
}

func (g *CoinGeckoSource) Name() string { return "coingecko" }

type coinResponse struct {
	SentimentVotesUpPercentage float64 `json:"sentiment_votes_up_percentage"`
	CommunityData              struct {
		TelegramChannelUserCount int     `json:"telegram_channel_user_count"`
		RedditSubscribers        int     `json:"reddit_subscribers"`
		RedditAccountsActive48h  int     `json:"reddit_accounts_active_48h"`
		RedditAveragePosts48h    float64 `json:"reddit_average_posts_48h"`
		RedditAverageComments48h float64 `json:"reddit_average_comments_48h"`
	} `json:"community_data"`
}

// Fetch implements Source. Cache hits bypass both the limiter and the wire.
func (g *CoinGeckoSource) Fetch(ctx context.Context, symbol string) (*models.SocialSnapshot, error) {
	id, ok := coingeckoIDs[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %s has no coingecko id", symbol)
	}

	cacheKey := "social:" + symbol
	var cached models.SocialSnapshot
	if found, err := g.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	url := fmt.Sprintf(
		"%s/api/v3/coins/%s?localization=false&tickers=false&market_data=false&community_data=true&developer_data=true&sparkline=false",
		g.baseURL, id,
	)
	resp, err := g.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var data coinResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	sentiment := data.SentimentVotesUpPercentage
	if sentiment == 0 {
		sentiment = 50
	}

	snap := models.SocialSnapshot{
		Symbol:       symbol,
		Community:    id,
		Subscribers:  data.CommunityData.RedditSubscribers,
		ActiveUsers:  data.CommunityData.RedditAccountsActive48h,
		Posts24h:     int(data.CommunityData.RedditAveragePosts48h + 0.5),
		AvgComments:  int(data.CommunityData.RedditAverageComments48h + 0.5),
		Sentiment:    sentiment,
		MentionCount: data.CommunityData.RedditSubscribers / 1000,
		Origin:       models.SocialOriginCoinGecko,
		FetchedAt:    g.now(),
	}

	if err := g.cache.Set(ctx, cacheKey, snap); err != nil {
		return nil, fmt.Errorf("failed to cache social snapshot: %w", err)
	}
	return &snap, nil
}
