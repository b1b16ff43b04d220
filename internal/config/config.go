// Package config loads service settings from defaults, an optional TOML file
// and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all runtime configuration.
type Config struct {
	// Server
	Addr              string        `toml:"addr"`
	ReadHeaderTimeout time.Duration `toml:"-"`
	ShutdownTimeout   time.Duration `toml:"-"`

	// Uploads
	UploadDir   string `toml:"upload_dir"`
	KeepUploads bool   `toml:"keep_uploads"`
	MaxUploadMB int    `toml:"max_upload_mb"`

	// Upload rate limiting (token bucket)
	RateLimit float64 `toml:"rate_limit"` // uploads per second, 0 disables
	RateBurst int     `toml:"rate_burst"`

	// History
	DBPath    string `toml:"db_path"`
	Workers   int    `toml:"workers"`
	QueueSize int    `toml:"queue_size"`

	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 15 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		UploadDir:         "uploads",
		KeepUploads:       true,
		MaxUploadMB:       32,
		RateLimit:         2,
		RateBurst:         5,
		DBPath:            "enisai.db",
		Workers:           2,
		QueueSize:         100,
		LogLevel:          "info",
	}
}

// Load builds the configuration. path may be empty; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Default(), fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return Default(), fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg.Addr = envStr("ENISAI_ADDR", cfg.Addr)
	cfg.UploadDir = envStr("ENISAI_UPLOAD_DIR", cfg.UploadDir)
	cfg.KeepUploads = envBool("ENISAI_KEEP_UPLOADS", cfg.KeepUploads)
	cfg.MaxUploadMB = envInt("ENISAI_MAX_UPLOAD_MB", cfg.MaxUploadMB)
	cfg.RateLimit = envFloat("ENISAI_RATE_LIMIT", cfg.RateLimit)
	cfg.RateBurst = envInt("ENISAI_RATE_BURST", cfg.RateBurst)
	cfg.DBPath = envStr("ENISAI_DB_PATH", cfg.DBPath)
	cfg.Workers = envInt("ENISAI_WORKERS", cfg.Workers)
	cfg.QueueSize = envInt("ENISAI_QUEUE_SIZE", cfg.QueueSize)
	cfg.LogLevel = envStr("ENISAI_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("config: upload_dir must not be empty")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config: max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: rate_limit must not be negative, got %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("config: rate_burst must be at least 1 when rate limiting")
	}
	return nil
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
