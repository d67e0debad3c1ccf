package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/redis/go-redis/v9"

	"github.com/leaf468/memehack/internal/ai"
	openainarrator "github.com/leaf468/memehack/internal/ai/openai"
	"github.com/leaf468/memehack/internal/api"
	"github.com/leaf468/memehack/internal/cache"
	"github.com/leaf468/memehack/internal/chain"
	"github.com/leaf468/memehack/internal/configs"
	"github.com/leaf468/memehack/internal/dashboard"
	"github.com/leaf468/memehack/internal/insight"
	"github.com/leaf468/memehack/internal/market"
	"github.com/leaf468/memehack/internal/sentiment"
	"github.com/leaf468/memehack/internal/social"
	"github.com/leaf468/memehack/internal/storage"
	"github.com/leaf468/memehack/internal/utils/request"
)

const cacheTTL = 5 * time.Minute

var (
	flagconf string

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.json", "config path, eg: -conf config.json")
}

func main() {
	flag.Parse()

	config, err := configs.Load(flagconf)
	if err != nil {
		log.Error("Error loading config", "err", err)
		return
	}

	secrets, err := configs.LoadSecrets()
	if err != nil {
		log.Error("Error loading secrets", "err", err)
		return
	}

	log.Debug("Loaded config", "config", config)

	if config.Proxy != "" {
		_ = os.Setenv("HTTP_PROXY", config.Proxy)
		_ = os.Setenv("HTTPS_PROXY", config.Proxy)
		log.Debug("set proxy ok", "proxy", config.Proxy)
	}

	// 캐시: redis가 설정되어 있으면 redis, 아니면 인메모리
	var ttlCache cache.TTL
	if config.Redis.Addr != "" {
		password := config.Redis.Password
		if secrets.RedisPassword != "" {
			password = secrets.RedisPassword
		}
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: password,
			DB:       config.Redis.DB,
		})
		ttlCache = cache.NewRedis(client, cacheTTL, "misp")
		log.Debug("init redis cache", "addr", config.Redis.Addr)
	} else {
		ttlCache = cache.NewMemory(cacheTTL, nil)
		log.Debug("init memory cache")
	}

	// 마켓 데이터 소스: dexscreener 우선, coinpaprika와 binance 폴백
	collector := market.NewCollector([]market.Source{
		market.NewDexScreenerSource(request.Request, ""),
		market.NewCoinPaprikaSource(request.Request, ""),
		market.NewBinanceSource(binance.NewClient("", "")),
	}, log)

	log.Debug("init market collector")

	// 소셜: live 모드는 coingecko + 시뮬레이터 폴백, simulated 모드는 시뮬레이터만
	var primary social.Source
	if config.SocialMode == "live" {
		primary = social.NewCoinGeckoSource(request.Request, "", ttlCache)
	}
	socialFetcher := social.NewFetcher(primary, social.NewSimulator(nil), log)

	log.Debug("init social fetcher", "mode", config.SocialMode)

	sentimentFetcher := sentiment.NewFetcher(request.Request, "", ttlCache, log)

	log.Debug("init sentiment fetcher")

	aggregator := insight.NewAggregator(insight.DefaultWeights)

	var narrator ai.Narrator
	if config.AIConfig.Enabled && secrets.OpenAIAPIKey != "" {
		narrator = openainarrator.NewOpenAINarrator(secrets.OpenAIAPIKey, config.AIConfig.ModelType)
		log.Debug("init narrator", "model", config.AIConfig.ModelType)
	}

	var archive dashboard.Archiver
	if config.Database.ConnStr != "" {
		storager, err := storage.NewPostgresStorage(config.Database.ConnStr)
		if err != nil {
			log.Error("Error creating storage", "err", err)
			return
		}
		defer storager.Close()
		archive = storager
		log.Debug("init storager")
	}

	var chainClient api.ChainClient
	if config.ChainConfig.RPCURL != "" {
		dialCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := chain.Dial(dialCtx, chain.Config{
			RPCURL:         config.ChainConfig.RPCURL,
			PredictionAddr: config.ChainConfig.PredictionAddr,
			RewardAddr:     config.ChainConfig.RewardAddr,
			PrivateKey:     secrets.ChainPrivateKey,
		})
		cancel()
		if err != nil {
			log.Error("Error dialing chain", "err", err)
			return
		}
		defer client.Close()
		chainClient = client
		log.Debug("init chain client", "read_only", client.ReadOnly())
	}

	service := dashboard.NewService(
		config.Symbols,
		collector,
		socialFetcher,
		sentimentFetcher,
		aggregator,
		log,
		dashboard.Options{
			Narrator: narrator,
			Archive:  archive,
		},
	)

	refreshInterval, err := time.ParseDuration(config.RefreshInterval)
	if err != nil {
		refreshInterval = 30 * time.Second
	}

	server := api.NewServer(config.HTTPAddr, service, chainClient, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := service.Run(ctx, refreshInterval); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("refresh loop stopped", "err", err)
		}
	}()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}
