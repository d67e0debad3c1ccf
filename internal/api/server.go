// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/leaf468/memehack/internal/chain"
	"github.com/leaf468/memehack/internal/models"
)

// Dashboard is the report-serving surface the handlers need.
type Dashboard interface {
	Latest() (models.MarketReport, bool)
	Token(symbol string) (models.TokenInsight, bool)
	Refresh(ctx context.Context) error
	MemeCaption(ctx context.Context, prompt string) (string, error)
}

// ChainClient is the contract surface the handlers need. A nil ChainClient
// disables the /api/rounds, /api/profile, /api/predictions, and
// /api/rewards routes.
type ChainClient interface {
	GetRound(ctx context.Context, roundID uint64) (*chain.Round, error)
	GetUserProfile(ctx context.Context, user common.Address) (*chain.UserProfile, error)
	PlacePrediction(ctx context.Context, roundID uint64, up bool, stake *big.Int) (*chain.TxHandle, error)
	ClaimDailyReward(ctx context.Context) (*chain.TxHandle, error)
}

// Server represents the HTTP API server.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	dashboard  Dashboard
	chain      ChainClient
	log        *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(addr string, dashboard Dashboard, chainClient ChainClient, log *slog.Logger) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		dashboard: dashboard,
		chain:     chainClient,
		log:       log,
	}

	s.router.Use(LoggingMiddleware(log))
	s.router.Use(RecoveryMiddleware(log))
	s.router.Use(CORSMiddleware)
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	apiRouter := s.router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	apiRouter.HandleFunc("/tokens", s.handleTokens).Methods(http.MethodGet)
	apiRouter.HandleFunc("/tokens/{symbol}", s.handleToken).Methods(http.MethodGet)
	apiRouter.HandleFunc("/sentiment", s.handleSentiment).Methods(http.MethodGet)
	apiRouter.HandleFunc("/alerts", s.handleAlerts).Methods(http.MethodGet)
	apiRouter.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	apiRouter.HandleFunc("/memes/caption", s.handleMemeCaption).Methods(http.MethodPost)
	apiRouter.HandleFunc("/rounds/{id}", s.handleRound).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profile/{address}", s.handleProfile).Methods(http.MethodGet)
	apiRouter.HandleFunc("/predictions", s.handlePlacePrediction).Methods(http.MethodPost)
	apiRouter.HandleFunc("/rewards/claim", s.handleClaimReward).Methods(http.MethodPost)
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving HTTP until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.log.Info("api server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "misp",
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.dashboard.Latest()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNotReady, "no report generated yet")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	report, ok := s.dashboard.Latest()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNotReady, "no report generated yet")
		return
	}
	respondJSON(w, http.StatusOK, report.Tokens)
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	token, ok := s.dashboard.Token(symbol)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "token not tracked: "+symbol)
		return
	}
	respondJSON(w, http.StatusOK, token)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	report, ok := s.dashboard.Latest()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNotReady, "no report generated yet")
		return
	}

	values := make([]models.SentimentValue, 0, len(report.Tokens))
	for _, token := range report.Tokens {
		values = append(values, token.Sentiment)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"overall": report.OverallSentiment,
		"tokens":  values,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	report, ok := s.dashboard.Latest()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNotReady, "no report generated yet")
		return
	}
	respondJSON(w, http.StatusOK, report.Alerts)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dashboard.Refresh(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "refresh failed")
		return
	}

	report, ok := s.dashboard.Latest()
	if !ok {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "refresh produced no report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleMemeCaption(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := parseJSONBody(r, &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "prompt is required")
		return
	}

	caption, err := s.dashboard.MemeCaption(r.Context(), req.Prompt)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "caption generation unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"caption": caption})
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	if s.chain == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "chain features disabled")
		return
	}

	roundID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "round id must be a positive integer")
		return
	}

	round, err := s.chain.GetRound(r.Context(), roundID)
	if err != nil {
		s.log.Error("round read failed", "round", roundID, "err", err)
		respondError(w, http.StatusBadGateway, ErrCodeServiceUnavailable, "failed to read round")
		return
	}
	respondJSON(w, http.StatusOK, round)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if s.chain == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "chain features disabled")
		return
	}

	address := mux.Vars(r)["address"]
	if !common.IsHexAddress(address) {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid address")
		return
	}

	profile, err := s.chain.GetUserProfile(r.Context(), common.HexToAddress(address))
	if err != nil {
		s.log.Error("profile read failed", "address", address, "err", err)
		respondError(w, http.StatusBadGateway, ErrCodeServiceUnavailable, "failed to read profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"tier":    chain.Tier(profile.Tier).String(),
	})
}

func (s *Server) handlePlacePrediction(w http.ResponseWriter, r *http.Request) {
	if s.chain == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "chain features disabled")
		return
	}

	var req struct {
		RoundID  uint64 `json:"round_id"`
		Up       bool   `json:"up"`
		StakeWei string `json:"stake_wei"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body")
		return
	}

	stake, ok := new(big.Int).SetString(req.StakeWei, 10)
	if !ok || stake.Sign() <= 0 {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "stake_wei must be a positive decimal string")
		return
	}

	handle, err := s.chain.PlacePrediction(r.Context(), req.RoundID, req.Up, stake)
	if err != nil {
		if errors.Is(err, chain.ErrReadOnly) {
			respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "service has no signing key")
			return
		}
		s.log.Error("prediction failed", "round", req.RoundID, "err", err)
		respondError(w, http.StatusBadGateway, ErrCodeServiceUnavailable, "failed to submit prediction")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"tx_hash": handle.Hash().Hex(),
		"status":  handle.Status(),
	})
}

func (s *Server) handleClaimReward(w http.ResponseWriter, r *http.Request) {
	if s.chain == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "chain features disabled")
		return
	}

	handle, err := s.chain.ClaimDailyReward(r.Context())
	if err != nil {
		if errors.Is(err, chain.ErrReadOnly) {
			respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "service has no signing key")
			return
		}
		s.log.Error("reward claim failed", "err", err)
		respondError(w, http.StatusBadGateway, ErrCodeServiceUnavailable, "failed to claim reward")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"tx_hash": handle.Hash().Hex(),
		"status":  handle.Status(),
	})
}
