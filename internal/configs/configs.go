package configs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// 기본 설정
	Symbols         []string `json:"symbols"`          // 추적할 토큰 심볼 목록
	RefreshInterval string   `json:"refresh_interval"` // 리포트 갱신 주기
	HTTPAddr        string   `json:"http_addr"`        // API 서버 주소
	SocialMode      string   `json:"social_mode"`      // live / simulated
	Proxy           string   `json:"proxy"`

	Database Database `json:"database"`
	Redis    Redis    `json:"redis"`

	// AI 모델 파라미터
	AIConfig AIConfig `json:"ai_config"`

	// 예측 마켓 컨트랙트 설정
	ChainConfig ChainConfig `json:"chain_config"`
}

type AIConfig struct {
	Enabled   bool   `json:"enabled"`
	ModelType string `json:"model_type"` // 기본값 gpt-4o-mini
}

type Database struct {
	ConnStr string `json:"conn_str"` // 비어 있으면 아카이빙 비활성화
}

type Redis struct {
	Addr     string `json:"addr"` // 비어 있으면 인메모리 캐시 사용
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type ChainConfig struct {
	RPCURL         string `json:"rpc_url"` // 비어 있으면 체인 기능 비활성화
	PredictionAddr string `json:"prediction_addr"`
	RewardAddr     string `json:"reward_addr"`
}

// Secrets are never read from the config file; they come from the
// environment, with a .env file honored when present.
type Secrets struct {
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	ChainPrivateKey string `envconfig:"CHAIN_PRIVATE_KEY"`
	RedisPassword   string `envconfig:"REDIS_PASSWORD"`
}

// Load reads the JSON config file at path and applies defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := json.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(config.Symbols) == 0 {
		config.Symbols = nil // caller substitutes the tracked-token default set
	}
	if config.RefreshInterval == "" {
		config.RefreshInterval = "30s"
	}
	if config.HTTPAddr == "" {
		config.HTTPAddr = ":8080"
	}
	if config.SocialMode == "" {
		config.SocialMode = "live"
	}
	if config.AIConfig.ModelType == "" {
		config.AIConfig.ModelType = "gpt-4o-mini"
	}

	return config, nil
}

// LoadSecrets maps environment variables into Secrets. A missing .env file
// is not an error; production environments set real variables.
func LoadSecrets() (*Secrets, error) {
	_ = godotenv.Load()

	secrets := &Secrets{}
	if err := envconfig.Process("", secrets); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return secrets, nil
}
