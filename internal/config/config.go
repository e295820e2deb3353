package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"

	kitcfg "github.com/shouni/go-storyboard-kit/pkg/config"
)

// デフォルト値の定義なのだ
const (
	DefaultListenAddr      = ":8080"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config はアプリケーション全体の環境設定（APIキーや待ち受けアドレス）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	FormEndpoint string
	ListenAddr   string
	ProjectsFile string
	SessionTTL   time.Duration
	RateInterval time.Duration

	Options AppOptions
}

// LoadConfig は .env と環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	// .env は任意なので、見つからなくても続行するのだ
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env を読み込まなかったのだ", "error", err)
	}

	cfg := &Config{
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:  envutil.GetEnv("GEMINI_MODEL", kitcfg.DefaultGeminiModel),
		FormEndpoint: envutil.GetEnv("FORM_ENDPOINT", kitcfg.DefaultFormEndpoint),
		ListenAddr:   envutil.GetEnv("LISTEN_ADDR", DefaultListenAddr),
		ProjectsFile: envutil.GetEnv("PROJECTS_FILE", ""),
		SessionTTL:   parseDuration("SESSION_TTL", kitcfg.DefaultSessionTTL),
		RateInterval: parseDuration("RATE_INTERVAL", kitcfg.DefaultRateInterval),
	}
	return cfg
}

// KitConfig はライブラリ側の設定に変換するのだ。
func (c *Config) KitConfig() kitcfg.Config {
	kc := kitcfg.NewConfig(c.GeminiAPIKey)
	if c.GeminiModel != "" {
		kc.GeminiModel = c.GeminiModel
	}
	if c.FormEndpoint != "" {
		kc.FormEndpoint = c.FormEndpoint
	}
	if c.SessionTTL > 0 {
		kc.SessionTTL = c.SessionTTL
	}
	kc.RateInterval = c.RateInterval
	return kc
}

// parseDuration は環境変数を time.Duration として読むのだ。不正な値は既定値に戻すのだよ。
func parseDuration(key string, def time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("不正な期間指定なので既定値を使うのだ", "key", key, "value", raw, "default", def)
		return def
	}
	return d
}

// AppOptions は CLI フラグから渡される実行時のパラメータなのだ。
type AppOptions struct {
	// サーバー関連
	ListenAddr string // --addr

	// AI挙動設定
	AIModel string // --model

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
	Verbose     bool          // --verbose
}

// Apply は CLI フラグで指定された値を環境設定より優先させるのだ。
func (c *Config) Apply(opts AppOptions) {
	c.Options = opts
	if opts.ListenAddr != "" {
		c.ListenAddr = opts.ListenAddr
	}
	if opts.AIModel != "" {
		c.GeminiModel = opts.AIModel
	}
}
