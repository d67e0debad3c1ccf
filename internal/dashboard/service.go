// Package dashboard drives the refresh pipeline and serves the latest
// report to the API layer.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leaf468/memehack/internal/ai"
	"github.com/leaf468/memehack/internal/insight"
	"github.com/leaf468/memehack/internal/market"
	"github.com/leaf468/memehack/internal/models"
	"github.com/leaf468/memehack/internal/report"
)

// MarketFetcher supplies one cycle's market snapshots. An empty batch means
// every source failed; the service substitutes the static fallback table.
type MarketFetcher interface {
	FetchBatch(ctx context.Context, symbols []string) []models.MarketSnapshot
}

// SocialFetcher supplies one token's community read.
type SocialFetcher interface {
	Fetch(ctx context.Context, symbol string) models.SocialResult
}

// SentimentFetcher resolves a batch of symbols against one baseline read.
type SentimentFetcher interface {
	ForSymbols(ctx context.Context, symbols []string) map[string]models.SentimentValue
}

// Archiver persists completed reports. A nil Archiver disables archiving.
type Archiver interface {
	SaveReport(ctx context.Context, report models.MarketReport) error
}

// Service owns the pipeline and the latest published report.
type Service struct {
	symbols    []string
	market     MarketFetcher
	social     SocialFetcher
	sentiment  SentimentFetcher
	aggregator *insight.Aggregator
	narrator   ai.Narrator // nil disables AI narration
	archive    Archiver    // nil disables archiving
	log        *slog.Logger
	now        func() time.Time

	mu     sync.RWMutex
	latest *models.MarketReport

	flightMu  sync.Mutex
	inflight  chan struct{}
	flightErr error
}

// Options carries the optional collaborators.
type Options struct {
	Narrator ai.Narrator
	Archive  Archiver
	Now      func() time.Time
}

// NewService wires the pipeline. symbols is the tracked set; an empty slice
// falls back to the default tracked tokens.
func NewService(symbols []string, m MarketFetcher, s SocialFetcher, v SentimentFetcher, agg *insight.Aggregator, log *slog.Logger, opts Options) *Service {
	if len(symbols) == 0 {
		symbols = market.DefaultSymbols()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		symbols:    symbols,
		market:     m,
		social:     s,
		sentiment:  v,
		aggregator: agg,
		narrator:   opts.Narrator,
		archive:    opts.Archive,
		log:        log,
		now:        now,
	}
}

// Latest returns the last published report, or false before the first cycle.
func (s *Service) Latest() (models.MarketReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return models.MarketReport{}, false
	}
	return *s.latest, true
}

// Token returns the latest insight for one symbol.
func (s *Service) Token(symbol string) (models.TokenInsight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return models.TokenInsight{}, false
	}
	for _, in := range s.latest.Tokens {
		if in.Symbol == symbol {
			return in, true
		}
	}
	return models.TokenInsight{}, false
}

// Refresh runs one pipeline cycle. Concurrent callers join the in-flight
// cycle instead of starting another.
func (s *Service) Refresh(ctx context.Context) error {
	s.flightMu.Lock()
	if ch := s.inflight; ch != nil {
		s.flightMu.Unlock()
		select {
		case <-ch:
			s.flightMu.Lock()
			err := s.flightErr
			s.flightMu.Unlock()
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	ch := make(chan struct{})
	s.inflight = ch
	s.flightMu.Unlock()

	err := s.refresh(ctx)

	s.flightMu.Lock()
	s.flightErr = err
	s.inflight = nil
	close(ch)
	s.flightMu.Unlock()

	return err
}

func (s *Service) refresh(ctx context.Context) error {
	started := s.now()

	markets := s.market.FetchBatch(ctx, s.symbols)
	if len(markets) == 0 {
		s.log.Info("no live market data, serving fallback table")
		markets = s.fallbackMarkets(started)
	}

	socials := s.fetchSocials(ctx, markets)
	sentiments := s.sentiment.ForSymbols(ctx, symbolsOf(markets))

	insights := s.aggregator.AggregateBatch(markets, socials, sentiments)
	rep := report.Build(insights, started)

	if s.narrator != nil {
		if summary, err := s.narrator.MarketReport(ctx, insights); err != nil {
			s.log.Info("AI narration unavailable, keeping templated summary", "err", err)
		} else {
			rep.Summary = summary
		}
	}

	if s.archive != nil {
		if err := s.archive.SaveReport(ctx, rep); err != nil {
			s.log.Error("failed to archive report", "err", err)
		}
	}

	s.mu.Lock()
	s.latest = &rep
	s.mu.Unlock()

	s.log.Info("report published",
		"tokens", len(rep.Tokens),
		"alerts", len(rep.Alerts),
		"sentiment", rep.OverallSentiment,
		"elapsed", s.now().Sub(started),
	)
	return nil
}

func (s *Service) fetchSocials(ctx context.Context, markets []models.MarketSnapshot) map[string]models.SocialResult {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	results := make(map[string]models.SocialResult, len(markets))

	for _, m := range markets {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			r := s.social.Fetch(ctx, symbol)
			mu.Lock()
			results[symbol] = r
			mu.Unlock()
		}(m.Symbol)
	}
	wg.Wait()

	return results
}

func (s *Service) fallbackMarkets(now time.Time) []models.MarketSnapshot {
	tracked := make(map[string]bool, len(s.symbols))
	for _, symbol := range s.symbols {
		tracked[symbol] = true
	}

	var out []models.MarketSnapshot
	for _, snap := range market.FallbackSnapshots(now) {
		if tracked[snap.Symbol] {
			out = append(out, snap)
		}
	}
	return out
}

// MemeCaption proxies a caption request to the narrator.
func (s *Service) MemeCaption(ctx context.Context, prompt string) (string, error) {
	if s.narrator == nil {
		return "", ai.ErrNarratorDisabled
	}
	return s.narrator.MemeCaption(ctx, prompt)
}

// Run refreshes immediately and then on every tick until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if err := s.Refresh(ctx); err != nil {
		s.log.Error("initial refresh failed", "err", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Error("scheduled refresh failed", "err", err)
			}
		}
	}
}

func symbolsOf(markets []models.MarketSnapshot) []string {
	symbols := make([]string, len(markets))
	for i, m := range markets {
		symbols[i] = m.Symbol
	}
	return symbols
}
