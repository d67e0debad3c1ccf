// Package insight folds one cycle's market, social, and sentiment readings
// into a per-token composite. Every function here is pure: same inputs, same
// TokenInsight, byte for byte.
package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/leaf468/memehack/internal/models"
)

// Weights parameterizes the scoring formulas. All tunables live here so a
// recalibration never touches the fold itself.
type Weights struct {
	// Cultural score component weights, in percent. They should sum to 100.
	Price     float64
	Volume    float64
	Social    float64
	Sentiment float64
	Liquidity float64
	BuySell   float64

	// Trend vote weights and the bearish/bullish cut lines.
	TrendPrice     float64
	TrendSocial    float64
	TrendSentiment float64
	TrendVolume    float64
	BearishCut     float64
	BullishCut     float64
}

// DefaultWeights are the production tunables. The cut lines at 0.7/1.3 are
// asymmetric around the vote midpoint on purpose: the vote scale tops out at
// 2 per component, so 1.3 demands broad agreement while 0.7 only needs a
// couple of weak components.
var DefaultWeights = Weights{
	Price:     25,
	Volume:    15,
	Social:    20,
	Sentiment: 20,
	Liquidity: 10,
	BuySell:   10,

	TrendPrice:     0.4,
	TrendSocial:    0.2,
	TrendSentiment: 0.25,
	TrendVolume:    0.15,
	BearishCut:     0.7,
	BullishCut:     1.3,
}

// Aggregator builds TokenInsights from per-source readings.
type Aggregator struct {
	weights Weights
}

// NewAggregator returns an aggregator using the given weights.
func NewAggregator(weights Weights) *Aggregator {
	return &Aggregator{weights: weights}
}

// Aggregate combines one token's readings into a TokenInsight. It never
// fails: an unavailable social read and a default sentiment still produce a
// complete record. GeneratedAt is the market snapshot's fetch time so the
// output carries no clock of its own.
func (a *Aggregator) Aggregate(market models.MarketSnapshot, social models.SocialResult, sentiment models.SentimentValue) models.TokenInsight {
	signals := a.computeSignals(market, social, sentiment)
	score := a.culturalScore(market, social, sentiment)
	trend := a.trendVote(market, social, sentiment)

	return models.TokenInsight{
		Symbol:        market.Symbol,
		Name:          market.Name,
		CulturalScore: score,
		MemeCount:     memeCount(market, social),
		Trend:         trend,
		RiskLevel:     riskLevel(market, social, sentiment),
		Prediction:    predict(signals, score),
		Signals:       signals,
		Insight:       insightText(market, social, sentiment, signals, trend),
		Market:        market,
		Social:        social,
		Sentiment:     sentiment,
		GeneratedAt:   market.FetchedAt,
	}
}

// AggregateBatch folds a whole cycle, preserving input order.
func (a *Aggregator) AggregateBatch(markets []models.MarketSnapshot, socials map[string]models.SocialResult, sentiments map[string]models.SentimentValue) []models.TokenInsight {
	insights := make([]models.TokenInsight, 0, len(markets))
	for _, m := range markets {
		social, ok := socials[m.Symbol]
		if !ok {
			social = models.NoSocial()
		}
		sentiment, ok := sentiments[m.Symbol]
		if !ok {
			sentiment = models.SentimentValue{Symbol: m.Symbol, Value: 50, Source: models.SentimentDefault}
		}
		insights = append(insights, a.Aggregate(m, social, sentiment))
	}
	return insights
}

// culturalScore is the 0-10000 composite: each component is pre-normalized
// to 0-100, weighted, then the total is scaled by 100.
func (a *Aggregator) culturalScore(market models.MarketSnapshot, social models.SocialResult, sentiment models.SentimentValue) int {
	priceScore := clamp(0, 100, 50+market.Change24h*2)
	volumeScore := math.Min(100, market.Volume24h/1e8*10)

	socialScore := 50.0
	if social.State == models.SocialMeasured {
		socialScore = math.Min(100, float64(social.Snapshot.MentionCount)/100*50+social.Snapshot.Sentiment)
	}

	liquidityScore := math.Min(100, market.Liquidity/1e7*10)

	ratioScore := 50.0
	if market.BuySellRatio > 1 {
		ratioScore = math.Min(100, market.BuySellRatio*50)
	}

	score := priceScore*a.weights.Price +
		volumeScore*a.weights.Volume +
		socialScore*a.weights.Social +
		sentiment.Value*a.weights.Sentiment +
		liquidityScore*a.weights.Liquidity +
		ratioScore*a.weights.BuySell

	return int(math.Round(score))
}

func (a *Aggregator) computeSignals(market models.MarketSnapshot, social models.SocialResult, sentiment models.SentimentValue) models.Signals {
	priceSignal := clamp(-100, 100, market.Change24h*5)

	socialSignal := 0.0
	if social.State == models.SocialMeasured {
		s := social.Snapshot
		socialSignal = (s.Sentiment - 50) * 2
		if s.ActiveUsers > 1000 {
			socialSignal += 20
		}
		if s.Posts24h > 50 {
			socialSignal += 15
		}
	}

	sentimentSignal := (sentiment.Value - 50) * 2

	momentum := priceSignal*0.4 + socialSignal*0.3 + sentimentSignal*0.3
	if market.BuySellRatio > 1.2 {
		momentum += 20
	} else if market.BuySellRatio < 0.8 {
		momentum -= 20
	}

	return models.Signals{
		Price:     int(math.Round(priceSignal)),
		Social:    int(math.Round(clamp(-100, 100, socialSignal))),
		Sentiment: int(math.Round(clamp(-100, 100, sentimentSignal))),
		Momentum:  int(math.Round(clamp(-100, 100, momentum))),
	}
}

// trendVote is a weighted 0-2 vote per component. An unavailable social read
// votes the neutral 1 rather than abstaining, so thin coverage does not drag
// a token bearish.
func (a *Aggregator) trendVote(market models.MarketSnapshot, social models.SocialResult, sentiment models.SentimentValue) models.Trend {
	var score float64

	switch {
	case market.Change24h > 5:
		score += 2 * a.weights.TrendPrice
	case market.Change24h > 0:
		score += 1 * a.weights.TrendPrice
	case market.Change24h > -5:
		score += 0.5 * a.weights.TrendPrice
	}

	if social.State == models.SocialMeasured {
		switch {
		case social.Snapshot.Sentiment > 70:
			score += 2 * a.weights.TrendSocial
		case social.Snapshot.Sentiment > 50:
			score += 1 * a.weights.TrendSocial
		default:
			score += 0.5 * a.weights.TrendSocial
		}
	} else {
		score += 1 * a.weights.TrendSocial
	}

	switch {
	case sentiment.Value > 65:
		score += 2 * a.weights.TrendSentiment
	case sentiment.Value > 50:
		score += 1 * a.weights.TrendSentiment
	case sentiment.Value > 40:
		score += 0.5 * a.weights.TrendSentiment
	}

	switch {
	case market.Volume24h > 1e8:
		score += 2 * a.weights.TrendVolume
	case market.Volume24h > 1e7:
		score += 1 * a.weights.TrendVolume
	}

	switch {
	case score >= a.weights.BullishCut:
		return models.TrendBullish
	case score <= a.weights.BearishCut:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

// riskLevel sums additive risk points: volatility, thin liquidity, and sour
// community or market sentiment.
func riskLevel(market models.MarketSnapshot, social models.SocialResult, sentiment models.SentimentValue) models.RiskLevel {
	points := 0

	volatility := math.Abs(market.Change24h)
	if volatility > 20 {
		points += 2
	} else if volatility > 10 {
		points += 1
	}

	if market.Liquidity < 1e6 {
		points += 2
	} else if market.Liquidity < 1e7 {
		points += 1
	}

	if social.State == models.SocialMeasured && social.Snapshot.Sentiment < 40 {
		points += 1
	}

	if sentiment.Value < 35 {
		points += 1
	}

	switch {
	case points >= 4:
		return models.RiskHigh
	case points >= 2:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func predict(signals models.Signals, culturalScore int) models.Prediction {
	combined := float64(signals.Price)*0.4 + float64(signals.Social)*0.3 + float64(signals.Momentum)*0.3

	direction := models.DirectionStable
	if combined > 20 {
		direction = models.DirectionUp
	} else if combined < -20 {
		direction = models.DirectionDown
	}

	confidence := clamp(30, 95, 50+math.Abs(combined)*0.3+float64(culturalScore)/200)

	return models.Prediction{
		Direction:  direction,
		Confidence: int(math.Round(confidence)),
	}
}

// memeCount estimates meme volume from the richest available source:
// subscriber base when the social read is real, mention counts when
// simulated, on-chain transaction volume when social is absent entirely.
func memeCount(market models.MarketSnapshot, social models.SocialResult) int {
	if social.State == models.SocialMeasured {
		if social.Snapshot.Origin == models.SocialOriginCoinGecko && social.Snapshot.Subscribers > 0 {
			return int(math.Round(float64(social.Snapshot.Subscribers) / 1000))
		}
		return social.Snapshot.MentionCount
	}
	return int(math.Round(float64(market.Txns24h) * 0.1))
}

// insightText assembles at most two fired observations, ordered by priority,
// with a trend-flavored fallback when nothing fired.
func insightText(market models.MarketSnapshot, social models.SocialResult, sentiment models.SentimentValue, signals models.Signals, trend models.Trend) string {
	var phrases []string

	if math.Abs(market.Change24h) > 10 {
		dir := "Up"
		if market.Change24h < 0 {
			dir = "Down"
		}
		phrases = append(phrases, fmt.Sprintf("%s %.1f%% in 24h", dir, math.Abs(market.Change24h)))
	}

	if sentiment.Value > 70 {
		phrases = append(phrases, fmt.Sprintf("Market sentiment bullish (%.0f%%)", sentiment.Value))
	} else if sentiment.Value < 35 {
		phrases = append(phrases, fmt.Sprintf("Market sentiment bearish (%.0f%%)", sentiment.Value))
	}

	if social.State == models.SocialMeasured {
		s := social.Snapshot
		if s.Sentiment > 75 && !anyContains(phrases, "sentiment") {
			phrases = append(phrases, fmt.Sprintf("Strong community sentiment (%.0f%%)", s.Sentiment))
		} else if s.Sentiment < 40 && !anyContains(phrases, "sentiment") {
			phrases = append(phrases, fmt.Sprintf("Bearish community mood (%.0f%%)", s.Sentiment))
		}
		if s.ActiveUsers > 1000 {
			phrases = append(phrases, fmt.Sprintf("High community activity (%d active)", s.ActiveUsers))
		}
	}

	if market.BuySellRatio > 1.5 {
		phrases = append(phrases, "Strong buying pressure")
	} else if market.BuySellRatio < 0.7 {
		phrases = append(phrases, "Selling pressure detected")
	}

	if signals.Momentum > 50 {
		phrases = append(phrases, "Bullish momentum building")
	} else if signals.Momentum < -50 {
		phrases = append(phrases, "Bearish momentum")
	}

	if len(phrases) == 0 {
		switch trend {
		case models.TrendBullish:
			return "Positive market conditions"
		case models.TrendBearish:
			return "Market showing weakness"
		default:
			return "Consolidating, watch for breakout"
		}
	}

	if len(phrases) > 2 {
		phrases = phrases[:2]
	}
	return strings.Join(phrases, ". ") + "."
}

func anyContains(phrases []string, substr string) bool {
	for _, p := range phrases {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
