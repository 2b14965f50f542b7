// Package config loads server configuration from an optional YAML file,
// CHARBUILDER_* environment variables and built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/character-builder/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g.
// CHARBUILDER_REDIS_ADDR for redis.addr
const EnvPrefix = "CHARBUILDER"

// Compendium sources
const (
	CompendiumStatic = "static"
	CompendiumAPI    = "api"
)

// ServerConfig holds the gRPC listener settings
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig holds draft storage settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	PoolSize int    `mapstructure:"pool_size"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format is json or console
	Format string `mapstructure:"format"`
}

// CompendiumConfig selects where equipment data comes from
type CompendiumConfig struct {
	Source      string        `mapstructure:"source"`
	BaseURL     string        `mapstructure:"base_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// DraftsConfig controls draft lifetime
type DraftsConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RulesConfig tunes rule decisions left to the table
type RulesConfig struct {
	ManualMinScore int `mapstructure:"manual_min_score"`
}

// Config is the top-level configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Compendium CompendiumConfig `mapstructure:"compendium"`
	Drafts     DraftsConfig     `mapstructure:"drafts"`
	Rules      RulesConfig      `mapstructure:"rules"`
}

// Validate checks every section and reports all violations at once
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", c.Server.Port, 1, 65535, vb)
	if c.Server.ShutdownTimeout <= 0 {
		vb.Field("server.shutdown_timeout", "must be positive")
	}

	errors.ValidateRequired("redis.addr", c.Redis.Addr, vb)
	if c.Redis.PoolSize < 0 {
		vb.Field("redis.pool_size", "must not be negative")
	}

	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"json", "console"}, vb)

	errors.ValidateEnum("compendium.source", c.Compendium.Source, []string{CompendiumStatic, CompendiumAPI}, vb)
	if c.Compendium.Source == CompendiumAPI {
		errors.ValidateRequired("compendium.base_url", c.Compendium.BaseURL, vb)
		if c.Compendium.HTTPTimeout <= 0 {
			vb.Field("compendium.http_timeout", "must be positive")
		}
	}

	if c.Drafts.TTL <= 0 {
		vb.Field("drafts.ttl", "must be positive")
	}
	errors.ValidateRange("rules.manual_min_score", c.Rules.ManualMinScore, 3, 20, vb)

	return vb.Build()
}

// LoadDotEnv loads .env files into the process environment when present.
// Missing files are not an error.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.use_tls", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("compendium.source", CompendiumStatic)
	v.SetDefault("compendium.base_url", "https://www.dnd5eapi.co/api/2014/")
	v.SetDefault("compendium.http_timeout", 10*time.Second)
	v.SetDefault("compendium.cache_ttl", 24*time.Hour)

	v.SetDefault("drafts.ttl", 24*time.Hour)

	v.SetDefault("rules.manual_min_score", 8)
}
