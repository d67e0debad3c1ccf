package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leaf468/memehack/internal/insight"
	"github.com/leaf468/memehack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubMarket struct {
	mu        sync.Mutex
	calls     int32
	snapshots []models.MarketSnapshot
	block     chan struct{} // when set, FetchBatch waits on it
}

func (s *stubMarket) FetchBatch(ctx context.Context, symbols []string) []models.MarketSnapshot {
	atomic.AddInt32(&s.calls, 1)
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots
}

type stubSocial struct{}

func (stubSocial) Fetch(ctx context.Context, symbol string) models.SocialResult {
	return models.MeasuredSocial(models.SocialSnapshot{
		Symbol:    symbol,
		Sentiment: 60,
		Origin:    models.SocialOriginSimulated,
	})
}

type stubSentiment struct{}

func (stubSentiment) ForSymbols(ctx context.Context, symbols []string) map[string]models.SentimentValue {
	out := make(map[string]models.SentimentValue, len(symbols))
	for _, s := range symbols {
		out[s] = models.SentimentValue{Symbol: s, Value: 55, Source: models.SentimentDerived}
	}
	return out
}

type stubNarrator struct {
	summary string
	caption string
	err     error
}

func (n *stubNarrator) MarketReport(ctx context.Context, tokens []models.TokenInsight) (string, error) {
	return n.summary, n.err
}

func (n *stubNarrator) TokenInsight(ctx context.Context, token models.TokenInsight) (string, error) {
	return "", n.err
}

func (n *stubNarrator) MemeCaption(ctx context.Context, prompt string) (string, error) {
	return n.caption, n.err
}

type recordingArchive struct {
	mu      sync.Mutex
	reports []models.MarketReport
}

func (a *recordingArchive) SaveReport(ctx context.Context, r models.MarketReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, r)
	return nil
}

func snapshot(symbol string, change float64) models.MarketSnapshot {
	return models.MarketSnapshot{
		Symbol:    symbol,
		Name:      symbol,
		Price:     1,
		Change24h: change,
		Volume24h: 5e7,
		Liquidity: 2e7,
		Trend:     models.TrendFromChange(change),
		FetchedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func newTestService(m MarketFetcher, opts Options) *Service {
	return NewService(
		[]string{"DOGE", "PEPE"},
		m,
		stubSocial{},
		stubSentiment{},
		insight.NewAggregator(insight.DefaultWeights),
		testLogger(),
		opts,
	)
}

func TestRefresh_PublishesReport(t *testing.T) {
	m := &stubMarket{snapshots: []models.MarketSnapshot{snapshot("DOGE", 3), snapshot("PEPE", 22)}}
	svc := newTestService(m, Options{})

	_, ok := svc.Latest()
	assert.False(t, ok, "no report before the first cycle")

	require.NoError(t, svc.Refresh(context.Background()))

	rep, ok := svc.Latest()
	require.True(t, ok)
	assert.Len(t, rep.Tokens, 2)
	assert.Equal(t, "PEPE", rep.TopMover)
	require.Len(t, rep.Alerts, 1)
	assert.Equal(t, models.AlertPriceSurge, rep.Alerts[0].Type)

	in, ok := svc.Token("PEPE")
	require.True(t, ok)
	assert.Equal(t, models.SocialMeasured, in.Social.State)

	_, ok = svc.Token("NOPE")
	assert.False(t, ok)
}

func TestRefresh_FallsBackWhenMarketEmpty(t *testing.T) {
	m := &stubMarket{} // every source failed: empty batch
	svc := newTestService(m, Options{})

	require.NoError(t, svc.Refresh(context.Background()))

	rep, ok := svc.Latest()
	require.True(t, ok)
	// fallback table trimmed to the tracked symbols
	assert.Len(t, rep.Tokens, 2)
	assert.NotEmpty(t, rep.Summary)
}

func TestRefresh_SingleFlight(t *testing.T) {
	block := make(chan struct{})
	m := &stubMarket{
		snapshots: []models.MarketSnapshot{snapshot("DOGE", 1)},
		block:     block,
	}
	svc := newTestService(m, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Refresh(context.Background())
		}()
	}

	// let the goroutines pile up on the in-flight cycle, then release it
	time.Sleep(50 * time.Millisecond)
	close(block)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&m.calls))
}

func TestRefresh_AISummaryReplacesTemplate(t *testing.T) {
	m := &stubMarket{snapshots: []models.MarketSnapshot{snapshot("DOGE", 1)}}
	svc := newTestService(m, Options{Narrator: &stubNarrator{summary: "DOGE leads a quiet session."}})

	require.NoError(t, svc.Refresh(context.Background()))

	rep, _ := svc.Latest()
	assert.Equal(t, "DOGE leads a quiet session.", rep.Summary)
}

func TestRefresh_AIErrorKeepsTemplatedSummary(t *testing.T) {
	m := &stubMarket{snapshots: []models.MarketSnapshot{snapshot("DOGE", 1)}}
	svc := newTestService(m, Options{Narrator: &stubNarrator{err: errors.New("quota exceeded")}})

	require.NoError(t, svc.Refresh(context.Background()))

	rep, _ := svc.Latest()
	assert.Contains(t, rep.Summary, "meme market")
}

func TestRefresh_Archives(t *testing.T) {
	m := &stubMarket{snapshots: []models.MarketSnapshot{snapshot("DOGE", 1)}}
	archive := &recordingArchive{}
	svc := newTestService(m, Options{Archive: archive})

	require.NoError(t, svc.Refresh(context.Background()))
	require.NoError(t, svc.Refresh(context.Background()))

	archive.mu.Lock()
	defer archive.mu.Unlock()
	assert.Len(t, archive.reports, 2)
}

func TestMemeCaption_WithoutNarrator(t *testing.T) {
	m := &stubMarket{snapshots: []models.MarketSnapshot{snapshot("DOGE", 1)}}
	svc := newTestService(m, Options{})

	_, err := svc.MemeCaption(context.Background(), "doge at 52-week high")
	assert.Error(t, err)
}
