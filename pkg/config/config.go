package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultTemperature  = float32(0.7)
	DefaultRateInterval = 1 * time.Second
	DefaultFormEndpoint = "https://formspree.io/f/mldopzbr"
	DefaultSessionTTL   = 1 * time.Hour
)

// Config は Storyboard Kit の各コンポーネントを動作させるための基本設定です。
type Config struct {
	// --- Google AI (Gemini API) Settings ---
	GeminiAPIKey string
	GeminiModel  string
	Temperature  float32

	// --- Generation Settings ---
	// RateInterval はモデル呼び出しの最小間隔です。0 の場合は制限しません。
	RateInterval time.Duration

	// --- Contact Relay Settings ---
	FormEndpoint string

	// --- Session Settings ---
	SessionTTL time.Duration
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		GeminiModel:  DefaultGeminiModel,
		Temperature:  DefaultTemperature,
		RateInterval: DefaultRateInterval,
		FormEndpoint: DefaultFormEndpoint,
		SessionTTL:   DefaultSessionTTL,
	}
}

// NewConfig はデフォルト値で初期化された Config に API キーをセットして返します。
func NewConfig(apiKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = apiKey
	return cfg
}
