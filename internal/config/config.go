// Package config loads minitools-mcp settings from defaults, an optional
// YAML file, an optional .env file and MINITOOLS_* environment variables.
//
// Keys use dotted paths (history.backend); the matching environment variable
// replaces dots with underscores (MINITOOLS_HISTORY_BACKEND).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/rates"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "MINITOOLS"

// History backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the complete application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	History  HistoryConfig  `mapstructure:"history"`
	Currency CurrencyConfig `mapstructure:"currency"`
	OCR      OCRConfig      `mapstructure:"ocr"`
	Compress CompressConfig `mapstructure:"compress"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HistoryConfig selects where color and conversion history is kept.
type HistoryConfig struct {
	Backend  string `mapstructure:"backend"`
	Dir      string `mapstructure:"dir"`
	RedisURL string `mapstructure:"redis_url"`
	Prefix   string `mapstructure:"prefix"`
	Limit    int    `mapstructure:"limit"`
}

// CurrencyConfig controls the exchange-rate feed.
type CurrencyConfig struct {
	FeedURL         string        `mapstructure:"feed_url"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
	Fallback        bool          `mapstructure:"fallback"`
}

// OCRConfig controls text recognition.
type OCRConfig struct {
	Language       string `mapstructure:"language"`
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
}

// CompressConfig holds the defaults for image compression requests.
type CompressConfig struct {
	Quality      float64 `mapstructure:"quality"`
	TargetSizeKB float64 `mapstructure:"target_kb"`
	Format       string  `mapstructure:"format"`
	MaxWidth     int     `mapstructure:"max_width"`
	MaxHeight    int     `mapstructure:"max_height"`
}

// Load reads configuration. When path is empty, minitools.yaml is looked up
// in the working directory and the user config directory; a missing file is
// not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "IMAGE_MCP_LOG_LEVEL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("minitools")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "minitools-mcp"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("history.backend", BackendFile)
	v.SetDefault("history.dir", defaultHistoryDir())
	v.SetDefault("history.redis_url", "")
	v.SetDefault("history.prefix", "minitools")
	v.SetDefault("history.limit", 10)

	v.SetDefault("currency.feed_url", rates.DefaultFeedURL)
	v.SetDefault("currency.refresh_interval", "1h")
	v.SetDefault("currency.timeout", "10s")
	v.SetDefault("currency.max_retries", 3)
	v.SetDefault("currency.fallback", false)

	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.tessdata_prefix", "")

	v.SetDefault("compress.quality", 0.8)
	v.SetDefault("compress.target_kb", 0)
	v.SetDefault("compress.format", "original")
	v.SetDefault("compress.max_width", 0)
	v.SetDefault("compress.max_height", 0)
}

func defaultHistoryDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "minitools-mcp", "history")
	}
	return filepath.Join(dir, "minitools-mcp", "history")
}

func (c *Config) validate() error {
	const op = "config"

	switch c.History.Backend {
	case BackendMemory:
	case BackendFile:
		if c.History.Dir == "" {
			return errs.Invalid(op, "history.dir is required for the file backend")
		}
	case BackendRedis:
		if c.History.RedisURL == "" {
			return errs.Invalid(op, "history.redis_url is required for the redis backend")
		}
	default:
		return errs.Invalid(op, "unknown history.backend %q", c.History.Backend)
	}
	if c.History.Limit <= 0 {
		return errs.Invalid(op, "history.limit must be positive, got %d", c.History.Limit)
	}

	if c.Currency.FeedURL == "" {
		return errs.Invalid(op, "currency.feed_url is required")
	}
	if c.Currency.Timeout <= 0 {
		return errs.Invalid(op, "currency.timeout must be positive")
	}
	if c.Currency.MaxRetries < 0 {
		return errs.Invalid(op, "currency.max_retries must not be negative")
	}
	if c.Currency.RefreshInterval < 0 {
		return errs.Invalid(op, "currency.refresh_interval must not be negative")
	}

	if c.Compress.Quality < 0 || c.Compress.Quality > 1 {
		return errs.Invalid(op, "compress.quality must be within [0, 1], got %v", c.Compress.Quality)
	}
	if c.Compress.TargetSizeKB < 0 {
		return errs.Invalid(op, "compress.target_kb must not be negative")
	}
	if c.Compress.MaxWidth < 0 || c.Compress.MaxHeight < 0 {
		return errs.Invalid(op, "compress.max_width and compress.max_height must not be negative")
	}
	if c.Compress.Format == "" {
		return errs.Invalid(op, "compress.format is required")
	}
	return nil
}
