// Package social retrieves per-token community metrics. Two interchangeable
// strategies exist: a real community-metrics API and a deterministic
// simulator; the simulator backs the real source on any failure, so the
// fetcher as a whole never errors.
package social

import (
	"context"

	"github.com/leaf468/memehack/internal/models"
)

// Logger is the subset of slog the fetcher needs.
type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// Source fetches one token's community snapshot from one strategy.
type Source interface {
	Name() string
	Fetch(ctx context.Context, symbol string) (*models.SocialSnapshot, error)
}

// Fetcher resolves community data through an optional primary source with
// the simulator as the always-available fallback.
type Fetcher struct {
	primary  Source // may be nil: offline mode
	fallback *Simulator
	logger   Logger
}

// NewFetcher creates a social fetcher. primary may be nil to run purely on
// simulated data.
func NewFetcher(primary Source, fallback *Simulator, logger Logger) *Fetcher {
	return &Fetcher{primary: primary, fallback: fallback, logger: logger}
}

// Fetch returns a measured SocialResult for the symbol. Rate limits and
// upstream failures degrade to the simulator rather than propagating.
func (f *Fetcher) Fetch(ctx context.Context, symbol string) models.SocialResult {
	if f.primary != nil {
		snap, err := f.primary.Fetch(ctx, symbol)
		if err == nil && snap != nil {
			return models.MeasuredSocial(*snap)
		}
		f.logger.Error("social source failed, using simulator", "source", f.primary.Name(), "symbol", symbol, "error", err)
	}

	snap, err := f.fallback.Fetch(ctx, symbol)
	if err != nil || snap == nil {
		// The simulator cannot actually fail; guard anyway.
		return models.NoSocial()
	}
	return models.MeasuredSocial(*snap)
}
