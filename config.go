package sitemaptree

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the knobs a deployment typically wants to tune without a
// rebuild: retry behavior, concurrency, and logging. It mirrors the
// Option values in tree.go; LoadConfig exists for callers (notably the
// CLI) that want these sourced from the environment instead of wired in
// code.
type Config struct {
	Retries       int           `mapstructure:"retries"`
	RetrySleep    time.Duration `mapstructure:"retry_sleep"`
	Concurrency   int           `mapstructure:"concurrency"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
}

// LoadConfig reads configuration from environment variables prefixed
// SITEMAPTREE_ (e.g. SITEMAPTREE_RETRIES), falling back to the package
// defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("retries", defaultRetryCount)
	v.SetDefault("retry_sleep", defaultRetrySleep)
	v.SetDefault("concurrency", defaultConcurrency)
	v.SetDefault("request_timeout", 60*time.Second)
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "json")

	v.SetEnvPrefix("sitemaptree")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Options converts the config into tree-build Options.
func (c *Config) Options(log *Logger) []Option {
	if log == nil {
		log = NewLogger(LoggerConfig{Level: c.LogLevel, Format: c.LogFormat})
	}
	return []Option{
		WithRetries(c.Retries, c.RetrySleep),
		WithConcurrency(c.Concurrency),
		WithWebClientTimeout(c.RequestTimeout),
		WithLogger(log),
	}
}
