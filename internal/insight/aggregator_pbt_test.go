package insight

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/leaf468/memehack/internal/models"
)

func genMarket() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(-99, 500),  // change24h
		gen.Float64Range(0, 5e9),    // volume
		gen.Float64Range(0, 1e9),    // liquidity
		gen.Float64Range(0.01, 10),  // buy/sell ratio
		gen.IntRange(0, 1_000_000),  // txns
	).Map(func(vals []interface{}) models.MarketSnapshot {
		return models.MarketSnapshot{
			Symbol:       "GEN",
			Change24h:    vals[0].(float64),
			Volume24h:    vals[1].(float64),
			Liquidity:    vals[2].(float64),
			BuySellRatio: vals[3].(float64),
			Txns24h:      vals[4].(int),
		}
	})
}

func genSocial() gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(), // measured or unavailable
		gen.Float64Range(0, 100),
		gen.IntRange(0, 100_000),
		gen.IntRange(0, 5_000),
	).Map(func(vals []interface{}) models.SocialResult {
		if !vals[0].(bool) {
			return models.NoSocial()
		}
		return models.MeasuredSocial(models.SocialSnapshot{
			Symbol:      "GEN",
			Sentiment:   vals[1].(float64),
			ActiveUsers: vals[2].(int),
			Posts24h:    vals[3].(int),
		})
	})
}

func genSentiment() gopter.Gen {
	return gen.Float64Range(0, 100).Map(func(v float64) models.SentimentValue {
		return models.SentimentValue{Symbol: "GEN", Value: v, Source: models.SentimentDerived}
	})
}

func TestAggregate_Properties(t *testing.T) {
	agg := NewAggregator(DefaultWeights)
	properties := gopter.NewProperties(nil)

	properties.Property("cultural score stays in [0,10000]", prop.ForAll(
		func(m models.MarketSnapshot, s models.SocialResult, v models.SentimentValue) bool {
			in := agg.Aggregate(m, s, v)
			return in.CulturalScore >= 0 && in.CulturalScore <= 10000
		},
		genMarket(), genSocial(), genSentiment(),
	))

	properties.Property("signals stay in [-100,100]", prop.ForAll(
		func(m models.MarketSnapshot, s models.SocialResult, v models.SentimentValue) bool {
			sig := agg.Aggregate(m, s, v).Signals
			for _, x := range []int{sig.Price, sig.Social, sig.Sentiment, sig.Momentum} {
				if x < -100 || x > 100 {
					return false
				}
			}
			return true
		},
		genMarket(), genSocial(), genSentiment(),
	))

	properties.Property("confidence stays in [30,95]", prop.ForAll(
		func(m models.MarketSnapshot, s models.SocialResult, v models.SentimentValue) bool {
			p := agg.Aggregate(m, s, v).Prediction
			return p.Confidence >= 30 && p.Confidence <= 95
		},
		genMarket(), genSocial(), genSentiment(),
	))

	properties.Property("raising change24h never lowers the trend", prop.ForAll(
		func(m models.MarketSnapshot, s models.SocialResult, v models.SentimentValue, bump float64) bool {
			lower := agg.Aggregate(m, s, v).Trend
			m.Change24h += bump
			higher := agg.Aggregate(m, s, v).Trend
			return trendRank(higher) >= trendRank(lower)
		},
		genMarket(), genSocial(), genSentiment(), gen.Float64Range(0, 50),
	))

	properties.Property("insight is never empty", prop.ForAll(
		func(m models.MarketSnapshot, s models.SocialResult, v models.SentimentValue) bool {
			return agg.Aggregate(m, s, v).Insight != ""
		},
		genMarket(), genSocial(), genSentiment(),
	))

	properties.TestingRun(t)
}

func trendRank(t models.Trend) int {
	switch t {
	case models.TrendBullish:
		return 2
	case models.TrendNeutral:
		return 1
	default:
		return 0
	}
}
