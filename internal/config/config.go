// Package config 由環境變數 (以及可選的 .env) 載入服務設定
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const EnvTest = "test"

type Config struct {
	// Env 為 test 時以 CreateSchema 建表並關閉錯誤日誌
	Env         string        `env:"APP_ENV" envDefault:"production"`
	Addr        string        `env:"ADDR" envDefault:":8080"`
	DatabaseURL string        `env:"DATABASE_URL,required,notEmpty"`
	SecretKey   string        `env:"SECRET_KEY,required,notEmpty"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"720h"`

	Redis  RedisConfig  `envPrefix:"REDIS_"`
	Asset  AssetConfig  `envPrefix:"ASSET_"`
	Upload UploadConfig `envPrefix:"UPLOAD_"`
	Jobs   JobsConfig
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type AssetConfig struct {
	APIURL      string        `env:"API_URL,required,notEmpty"`
	DeliveryURL string        `env:"DELIVERY_URL,required,notEmpty"`
	APIKey      string        `env:"API_KEY,required,notEmpty"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type UploadConfig struct {
	MaxBytes   int64    `env:"MAX_BYTES" envDefault:"5242880"`
	Extensions []string `env:"EXTENSIONS" envSeparator:"," envDefault:"png,jpg"`
}

type JobsConfig struct {
	AllowAnonymous     bool   `env:"ALLOW_ANONYMOUS_JOBS" envDefault:"true"`
	FallbackAdminEmail string `env:"FALLBACK_ADMIN_EMAIL"`
}

func (c Config) IsTest() bool {
	return c.Env == EnvTest
}

// Sanitize 正規化 env 讀進來的值
func (c *Config) Sanitize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Asset.APIURL = strings.TrimRight(c.Asset.APIURL, "/")
	c.Asset.DeliveryURL = strings.TrimRight(c.Asset.DeliveryURL, "/")

	exts := make([]string, 0, len(c.Upload.Extensions))
	for _, ext := range c.Upload.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	c.Upload.Extensions = exts
	c.Jobs.FallbackAdminEmail = strings.ToLower(strings.TrimSpace(c.Jobs.FallbackAdminEmail))
}

func (c Config) Validate() error {
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.Asset.Timeout <= 0 {
		return errors.New("ASSET_TIMEOUT must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	if len(c.Upload.Extensions) == 0 {
		return errors.New("UPLOAD_EXTENSIONS must not be empty")
	}
	return nil
}

// Load 先讀取 .env (若存在)，再解析環境變數
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
