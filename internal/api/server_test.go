package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/leaf468/memehack/internal/chain"
	"github.com/leaf468/memehack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboard struct {
	report  *models.MarketReport
	caption string
	err     error
}

func (d *stubDashboard) Latest() (models.MarketReport, bool) {
	if d.report == nil {
		return models.MarketReport{}, false
	}
	return *d.report, true
}

func (d *stubDashboard) Token(symbol string) (models.TokenInsight, bool) {
	if d.report == nil {
		return models.TokenInsight{}, false
	}
	for _, t := range d.report.Tokens {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return models.TokenInsight{}, false
}

func (d *stubDashboard) Refresh(ctx context.Context) error { return d.err }

func (d *stubDashboard) MemeCaption(ctx context.Context, prompt string) (string, error) {
	return d.caption, d.err
}

type stubChain struct {
	round   *chain.Round
	profile *chain.UserProfile
	err     error
}

func (c *stubChain) GetRound(ctx context.Context, roundID uint64) (*chain.Round, error) {
	return c.round, c.err
}

func (c *stubChain) GetUserProfile(ctx context.Context, user common.Address) (*chain.UserProfile, error) {
	return c.profile, c.err
}

func (c *stubChain) PlacePrediction(ctx context.Context, roundID uint64, up bool, stake *big.Int) (*chain.TxHandle, error) {
	return nil, c.err
}

func (c *stubChain) ClaimDailyReward(ctx context.Context) (*chain.TxHandle, error) {
	return nil, c.err
}

func sampleReport() *models.MarketReport {
	return &models.MarketReport{
		Timestamp: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Tokens: []models.TokenInsight{
			{
				Symbol:        "DOGE",
				CulturalScore: 5200,
				Trend:         models.TrendBullish,
				Sentiment:     models.SentimentValue{Symbol: "DOGE", Value: 62, Source: models.SentimentDerived},
			},
		},
		Summary:          "Meme market showing strength. 1/1 tokens bullish.",
		TopMover:         "DOGE",
		Alerts:           []models.Alert{{Type: models.AlertPriceSurge, Symbol: "DOGE"}},
		OverallSentiment: models.TrendBullish,
	}
}

func newTestServer(d Dashboard, c ChainClient) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", d, c, log)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&stubDashboard{}, nil)
	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetReport(t *testing.T) {
	s := newTestServer(&stubDashboard{report: sampleReport()}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/report", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.MarketReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "DOGE", got.TopMover)
	assert.Len(t, got.Tokens, 1)
}

func TestGetReport_NotReady(t *testing.T) {
	s := newTestServer(&stubDashboard{}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/report", "")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeNotReady, resp.Error.Code)
}

func TestGetToken_CaseInsensitive(t *testing.T) {
	s := newTestServer(&stubDashboard{report: sampleReport()}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/tokens/doge", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.TokenInsight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "DOGE", got.Symbol)
}

func TestGetToken_NotFound(t *testing.T) {
	s := newTestServer(&stubDashboard{report: sampleReport()}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/tokens/NOPE", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSentiment(t *testing.T) {
	s := newTestServer(&stubDashboard{report: sampleReport()}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/sentiment", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Overall models.Trend            `json:"overall"`
		Tokens  []models.SentimentValue `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.TrendBullish, got.Overall)
	require.Len(t, got.Tokens, 1)
	assert.Equal(t, float64(62), got.Tokens[0].Value)
}

func TestPostRefresh(t *testing.T) {
	s := newTestServer(&stubDashboard{report: sampleReport()}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostRefresh_Failure(t *testing.T) {
	s := newTestServer(&stubDashboard{err: errors.New("boom")}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMemeCaption(t *testing.T) {
	s := newTestServer(&stubDashboard{caption: "much wow, very pump"}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/memes/caption", `{"prompt":"doge new ath"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "much wow, very pump", got["caption"])
}

func TestMemeCaption_EmptyPrompt(t *testing.T) {
	s := newTestServer(&stubDashboard{}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/memes/caption", `{"prompt":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRound(t *testing.T) {
	c := &stubChain{round: &chain.Round{
		RoundId:      big.NewInt(7),
		TokenSymbol:  "PEPE",
		InitialScore: big.NewInt(6450),
		Status:       uint8(chain.RoundOpen),
	}}
	s := newTestServer(&stubDashboard{}, c)
	rec := doRequest(t, s, http.MethodGet, "/api/rounds/7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got chain.Round
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "PEPE", got.TokenSymbol)
}

func TestGetRound_BadID(t *testing.T) {
	s := newTestServer(&stubDashboard{}, &stubChain{})
	rec := doRequest(t, s, http.MethodGet, "/api/rounds/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRound_ChainDisabled(t *testing.T) {
	s := newTestServer(&stubDashboard{}, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/rounds/7", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetProfile(t *testing.T) {
	c := &stubChain{profile: &chain.UserProfile{
		TotalRewardsEarned: big.NewInt(1e18),
		Tier:               uint8(chain.TierGold),
		IsActive:           true,
	}}
	s := newTestServer(&stubDashboard{}, c)
	rec := doRequest(t, s, http.MethodGet, "/api/profile/0x6982508145454Ce325dDbE47a25d4ec3d2311933", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Tier string `json:"tier"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Gold", got.Tier)
}

func TestGetProfile_InvalidAddress(t *testing.T) {
	s := newTestServer(&stubDashboard{}, &stubChain{})
	rec := doRequest(t, s, http.MethodGet, "/api/profile/not-an-address", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlacePrediction_ReadOnly(t *testing.T) {
	s := newTestServer(&stubDashboard{}, &stubChain{err: chain.ErrReadOnly})
	rec := doRequest(t, s, http.MethodPost, "/api/predictions", `{"round_id":7,"up":true,"stake_wei":"500000000000000"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error.Message, "signing key")
}

func TestPlacePrediction_BadStake(t *testing.T) {
	s := newTestServer(&stubDashboard{}, &stubChain{})
	rec := doRequest(t, s, http.MethodPost, "/api/predictions", `{"round_id":7,"up":true,"stake_wei":"-5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClaimReward_ReadOnly(t *testing.T) {
	s := newTestServer(&stubDashboard{}, &stubChain{err: chain.ErrReadOnly})
	rec := doRequest(t, s, http.MethodPost, "/api/rewards/claim", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
