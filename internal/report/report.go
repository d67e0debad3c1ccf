// Package report folds a completed insight batch into a MarketReport.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/leaf468/memehack/internal/models"
)

// Alert thresholds. A surge is notable well before a crash is: meme tokens
// routinely pump 20% but a 15% drop usually means rotation out.
const (
	surgeThreshold       = 20
	crashThreshold       = -15
	socialSpikeThreshold = 2000
)

// Build derives a MarketReport from one cycle's insights. It reads nothing
// but its arguments; now is the only clock input. An empty batch yields an
// empty neutral report rather than an error.
func Build(insights []models.TokenInsight, now time.Time) models.MarketReport {
	if len(insights) == 0 {
		return models.MarketReport{
			Timestamp:        now,
			Tokens:           []models.TokenInsight{},
			Summary:          "No token data available this cycle.",
			Alerts:           []models.Alert{},
			OverallSentiment: models.TrendNeutral,
		}
	}

	alerts := collectAlerts(insights, now)

	topMover := insights[0]
	for _, in := range insights[1:] {
		if math.Abs(in.Market.Change24h) > math.Abs(topMover.Market.Change24h) {
			topMover = in
		}
	}

	var bullish, bearish int
	for _, in := range insights {
		switch in.Trend {
		case models.TrendBullish:
			bullish++
		case models.TrendBearish:
			bearish++
		}
	}

	overall := models.TrendNeutral
	if bullish > bearish {
		overall = models.TrendBullish
	} else if bearish > bullish {
		overall = models.TrendBearish
	}

	return models.MarketReport{
		Timestamp:        now,
		Tokens:           insights,
		Summary:          summarize(insights, overall, bullish, bearish),
		TopMover:         topMover.Symbol,
		Alerts:           alerts,
		OverallSentiment: overall,
	}
}

func collectAlerts(insights []models.TokenInsight, now time.Time) []models.Alert {
	alerts := []models.Alert{}

	for _, in := range insights {
		change := in.Market.Change24h

		if change > surgeThreshold {
			alerts = append(alerts, models.Alert{
				Type:      models.AlertPriceSurge,
				Symbol:    in.Symbol,
				Message:   fmt.Sprintf("%s surged %.1f%%", in.Symbol, change),
				Severity:  models.SeverityWarning,
				Timestamp: now,
			})
		}

		if change < crashThreshold {
			alerts = append(alerts, models.Alert{
				Type:      models.AlertPriceCrash,
				Symbol:    in.Symbol,
				Message:   fmt.Sprintf("%s dropped %.1f%%", in.Symbol, math.Abs(change)),
				Severity:  models.SeverityCritical,
				Timestamp: now,
			})
		}

		if in.Social.State == models.SocialMeasured && in.Social.Snapshot.ActiveUsers > socialSpikeThreshold {
			alerts = append(alerts, models.Alert{
				Type:      models.AlertSocialSpike,
				Symbol:    in.Symbol,
				Message:   fmt.Sprintf("%s social activity spike", in.Symbol),
				Severity:  models.SeverityInfo,
				Timestamp: now,
			})
		}
	}

	return alerts
}

func summarize(insights []models.TokenInsight, overall models.Trend, bullish, bearish int) string {
	var summary string
	switch overall {
	case models.TrendBullish:
		summary = fmt.Sprintf("Meme market showing strength. %d/%d tokens bullish.", bullish, len(insights))
	case models.TrendBearish:
		summary = fmt.Sprintf("Meme market under pressure. %d/%d tokens bearish.", bearish, len(insights))
	default:
		summary = "Mixed signals in meme market. Watching for direction."
	}

	var total int
	for _, in := range insights {
		total += in.CulturalScore
	}
	avg := float64(total) / float64(len(insights))

	return summary + fmt.Sprintf(" Avg Cultural Score: %.0f/100.", avg/100)
}
