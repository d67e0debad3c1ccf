package report

import (
	"testing"
	"time"

	"github.com/leaf468/memehack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightWith(symbol string, change float64, trend models.Trend, score int) models.TokenInsight {
	return models.TokenInsight{
		Symbol:        symbol,
		CulturalScore: score,
		Trend:         trend,
		Market: models.MarketSnapshot{
			Symbol:    symbol,
			Change24h: change,
		},
	}
}

func TestBuild_SurgeAndCrashAlerts(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	insights := []models.TokenInsight{
		insightWith("PEPE", 22, models.TrendBullish, 7000),
		insightWith("DOGE", -18.4, models.TrendBearish, 5000),
		insightWith("WIF", 3, models.TrendNeutral, 4000),
	}

	r := Build(insights, now)

	require.Len(t, r.Alerts, 2)
	assert.Equal(t, models.AlertPriceSurge, r.Alerts[0].Type)
	assert.Equal(t, models.SeverityWarning, r.Alerts[0].Severity)
	assert.Equal(t, "PEPE surged 22.0%", r.Alerts[0].Message)
	assert.Equal(t, models.AlertPriceCrash, r.Alerts[1].Type)
	assert.Equal(t, models.SeverityCritical, r.Alerts[1].Severity)
	assert.Equal(t, "DOGE dropped 18.4%", r.Alerts[1].Message)
	assert.Equal(t, now, r.Alerts[0].Timestamp)
}

func TestBuild_SocialSpikeAlert(t *testing.T) {
	in := insightWith("BONK", 0, models.TrendNeutral, 4000)
	in.Social = models.MeasuredSocial(models.SocialSnapshot{Symbol: "BONK", ActiveUsers: 3500})

	r := Build([]models.TokenInsight{in}, time.Now())

	require.Len(t, r.Alerts, 1)
	assert.Equal(t, models.AlertSocialSpike, r.Alerts[0].Type)
	assert.Equal(t, models.SeverityInfo, r.Alerts[0].Severity)
	assert.Equal(t, "BONK social activity spike", r.Alerts[0].Message)
}

func TestBuild_NoSpikeWhenSocialUnavailable(t *testing.T) {
	in := insightWith("BONK", 0, models.TrendNeutral, 4000)
	in.Social = models.NoSocial()
	in.Social.Snapshot.ActiveUsers = 9999 // zero-value snapshot must be ignored

	r := Build([]models.TokenInsight{in}, time.Now())
	assert.Empty(t, r.Alerts)
}

func TestBuild_TopMoverByAbsoluteChange(t *testing.T) {
	insights := []models.TokenInsight{
		insightWith("DOGE", 8, models.TrendBullish, 5000),
		insightWith("SHIB", -12, models.TrendBearish, 5000),
		insightWith("PEPE", 10, models.TrendBullish, 5000),
	}

	r := Build(insights, time.Now())
	assert.Equal(t, "SHIB", r.TopMover)
}

func TestBuild_OverallSentimentAndSummary(t *testing.T) {
	insights := []models.TokenInsight{
		insightWith("DOGE", 8, models.TrendBullish, 6000),
		insightWith("PEPE", 12, models.TrendBullish, 8000),
		insightWith("SHIB", -6, models.TrendBearish, 4000),
	}

	r := Build(insights, time.Now())

	assert.Equal(t, models.TrendBullish, r.OverallSentiment)
	assert.Equal(t, "Meme market showing strength. 2/3 tokens bullish. Avg Cultural Score: 60/100.", r.Summary)
}

func TestBuild_BearishSummary(t *testing.T) {
	insights := []models.TokenInsight{
		insightWith("DOGE", -8, models.TrendBearish, 3000),
		insightWith("PEPE", -12, models.TrendBearish, 3000),
		insightWith("SHIB", 6, models.TrendBullish, 3000),
	}

	r := Build(insights, time.Now())

	assert.Equal(t, models.TrendBearish, r.OverallSentiment)
	assert.Equal(t, "Meme market under pressure. 2/3 tokens bearish. Avg Cultural Score: 30/100.", r.Summary)
}

func TestBuild_MixedSummary(t *testing.T) {
	insights := []models.TokenInsight{
		insightWith("DOGE", 8, models.TrendBullish, 5000),
		insightWith("PEPE", -8, models.TrendBearish, 5000),
	}

	r := Build(insights, time.Now())

	assert.Equal(t, models.TrendNeutral, r.OverallSentiment)
	assert.Equal(t, "Mixed signals in meme market. Watching for direction. Avg Cultural Score: 50/100.", r.Summary)
}

func TestBuild_EmptyBatch(t *testing.T) {
	now := time.Now()
	r := Build(nil, now)

	assert.Equal(t, now, r.Timestamp)
	assert.Empty(t, r.Tokens)
	assert.Empty(t, r.Alerts)
	assert.Equal(t, models.TrendNeutral, r.OverallSentiment)
	assert.NotEmpty(t, r.Summary)
}
