package models

import "time"

// Trend is the three-state classification derived from weighted signals.
type Trend string

const (
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
	TrendBullish Trend = "bullish"
)

// RiskLevel buckets the additive risk-point total.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Direction is the short-term prediction direction.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// Severity grades an Alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AlertType tags the condition that fired an Alert.
type AlertType string

const (
	AlertPriceSurge     AlertType = "price_surge"
	AlertPriceCrash     AlertType = "price_crash"
	AlertSocialSpike    AlertType = "social_spike"
	AlertSentimentShift AlertType = "sentiment_shift"
)

// TrendFromChange buckets a 24h percentage change: above +5 is bullish,
// below -5 is bearish, everything between is neutral.
func TrendFromChange(change24h float64) Trend {
	switch {
	case change24h > 5:
		return TrendBullish
	case change24h < -5:
		return TrendBearish
	default:
		return TrendNeutral
	}
}

// MarketSnapshot is an immutable per-cycle read of one token's market state.
// The next cycle supersedes it with a fresh snapshot; it is never mutated.
type MarketSnapshot struct {
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Change24h    float64   `json:"change_24h"`
	Change1h     float64   `json:"change_1h"`
	Volume24h    float64   `json:"volume_24h"`
	MarketCap    float64   `json:"market_cap"`
	Liquidity    float64   `json:"liquidity"`
	Txns24h      int       `json:"txns_24h"`
	BuySellRatio float64   `json:"buy_sell_ratio"`
	Trend        Trend     `json:"trend"`
	ImageURL     string    `json:"image_url,omitempty"`
	Chain        string    `json:"chain"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// SocialOrigin names the strategy that produced a SocialSnapshot.
type SocialOrigin string

const (
	SocialOriginCoinGecko SocialOrigin = "coingecko"
	SocialOriginSimulated SocialOrigin = "reddit_sim"
)

// SocialSnapshot holds community metrics for one token over the last 24-48h.
type SocialSnapshot struct {
	Symbol       string       `json:"symbol"`
	Community    string       `json:"community"`
	Subscribers  int          `json:"subscribers"`
	ActiveUsers  int          `json:"active_users"`
	Posts24h     int          `json:"posts_24h"`
	AvgScore     int          `json:"avg_score"`
	AvgComments  int          `json:"avg_comments"`
	Sentiment    float64      `json:"sentiment"` // 0-100
	MentionCount int          `json:"mention_count"`
	Origin       SocialOrigin `json:"origin"`
	FetchedAt    time.Time    `json:"fetched_at"`
}

// SocialState says whether community data was measured this cycle.
type SocialState string

const (
	SocialMeasured    SocialState = "measured"
	SocialUnavailable SocialState = "unavailable"
)

// SocialResult is a measured-or-unavailable variant. Consumers switch on
// State instead of testing a pointer for nil.
type SocialResult struct {
	State    SocialState    `json:"state"`
	Snapshot SocialSnapshot `json:"snapshot,omitempty"`
}

// MeasuredSocial wraps a snapshot in the measured state.
func MeasuredSocial(s SocialSnapshot) SocialResult {
	return SocialResult{State: SocialMeasured, Snapshot: s}
}

// NoSocial is the unavailable state.
func NoSocial() SocialResult {
	return SocialResult{State: SocialUnavailable}
}

// SentimentSource tags how a SentimentValue was obtained.
type SentimentSource string

const (
	// SentimentMeasured is a direct reading of the shared index.
	SentimentMeasured SentimentSource = "measured"
	// SentimentDerived is baseline scaled by the per-symbol volatility multiplier.
	SentimentDerived SentimentSource = "derived"
	// SentimentDefault is the neutral fallback when nothing was reachable.
	SentimentDefault SentimentSource = "default"
)

// SentimentValue is the 0-100 market sentiment for one token.
type SentimentValue struct {
	Symbol         string          `json:"symbol"`
	Value          float64         `json:"value"` // always clamped to [0,100]
	Classification string          `json:"classification,omitempty"`
	Source         SentimentSource `json:"source"`
}

// Signals are the normalized sub-signals behind a prediction, each in [-100,100].
type Signals struct {
	Price     int `json:"price"`
	Social    int `json:"social"`
	Sentiment int `json:"sentiment"`
	Momentum  int `json:"momentum"`
}

// Prediction is a directional call with confidence in [30,95].
type Prediction struct {
	Direction  Direction `json:"direction"`
	Confidence int       `json:"confidence"`
}

// TokenInsight is the per-token composite record built once per cycle.
// It is never mutated after construction.
type TokenInsight struct {
	Symbol        string         `json:"symbol"`
	Name          string         `json:"name"`
	CulturalScore int            `json:"cultural_score"` // 0-10000
	MemeCount     int            `json:"meme_count"`
	Trend         Trend          `json:"trend"`
	RiskLevel     RiskLevel      `json:"risk_level"`
	Prediction    Prediction     `json:"prediction"`
	Signals       Signals        `json:"signals"`
	Insight       string         `json:"insight"`
	Market        MarketSnapshot `json:"market"`
	Social        SocialResult   `json:"social"`
	Sentiment     SentimentValue `json:"sentiment"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// Alert is generated once and discarded at the next cycle.
type Alert struct {
	Type      AlertType `json:"type"`
	Symbol    string    `json:"symbol"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// MarketReport is derived entirely from one completed batch of insights.
type MarketReport struct {
	Timestamp        time.Time      `json:"timestamp"`
	Tokens           []TokenInsight `json:"tokens"`
	Summary          string         `json:"summary"`
	TopMover         string         `json:"top_mover"`
	Alerts           []Alert        `json:"alerts"`
	OverallSentiment Trend          `json:"overall_sentiment"`
}
