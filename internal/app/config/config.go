package config

import (
	"errors"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowOrigin string        `envconfig:"CORS_ALLOW_ORIGIN" default:"*"`
	RenderRateLimit int           `envconfig:"RENDER_RATE_LIMIT" default:"30"`

	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	InternalToken string `envconfig:"INTERNAL_TOKEN" required:"true"`
	JWTSecret     string `envconfig:"JWT_SECRET"`

	OutputDir       string `envconfig:"OUTPUT_DIR" default:"media/orcamentos/gerados"`
	GCSBucket       string `envconfig:"GCS_BUCKET"`
	GCSPrefix       string `envconfig:"GCS_PREFIX" default:"orcamentos/gerados"`
	MediaRoot       string `envconfig:"MEDIA_ROOT" default:"media"`
	FontDir         string `envconfig:"FONT_DIR"`
	DefaultLogoPath string `envconfig:"DEFAULT_LOGO_PATH" default:"MUNDOKIDS_LOGO.png"`
	ImageWidth      int    `envconfig:"IMAGE_WIDTH" default:"1080"`
	ImageFormat     string `envconfig:"IMAGE_FORMAT" default:"png"`

	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramBaseURL  string `envconfig:"TELEGRAM_BASE_URL" default:"https://api.telegram.org"`

	RedisAddr         string `envconfig:"REDIS_ADDR"`
	WorkerConcurrency int    `envconfig:"WORKER_CONCURRENCY" default:"4"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.InternalToken == "" {
		return Config{}, errors.New("config: INTERNAL_TOKEN must be set")
	}
	if cfg.DatabaseURL != "" && cfg.JWTSecret == "" {
		return Config{}, errors.New("config: JWT_SECRET must be set when DATABASE_URL is")
	}
	return cfg, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// JobsEnabled reports whether background jobs have a queue to use.
func (c Config) JobsEnabled() bool { return c.RedisAddr != "" }
