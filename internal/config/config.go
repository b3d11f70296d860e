package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBaseURL        string        `mapstructure:"api_base_url"`
	APITimeoutSeconds int64         `mapstructure:"api_timeout_seconds"`
	APITimeout        time.Duration `mapstructure:"-"`
	SinksFile         string        `mapstructure:"sinks_file"`

	ListenAddr  string        `mapstructure:"listen_addr"`
	StorageType string        `mapstructure:"storage_type"`
	BBoltPath   string        `mapstructure:"bbolt_path"`
	SeedFile    string        `mapstructure:"seed_file"`
	MockDelayMs int64         `mapstructure:"mock_delay_ms"`
	MockDelay   time.Duration `mapstructure:"-"`
}

// FlagKeys maps command-line flag names onto config keys for LoadWithFlags.
var FlagKeys = map[string]string{
	"api-url":   "api_base_url",
	"timeout":   "api_timeout_seconds",
	"log-level": "log_level",
	"sinks":     "sinks_file",
	"listen":    "listen_addr",
	"db":        "bbolt_path",
	"seed":      "seed_file",
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with explicitly set flags from fs taking precedence over the environment.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "hero-data-service")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("api_timeout_seconds", 10)
	v.SetDefault("sinks_file", "")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/heroes.db")
	v.SetDefault("seed_file", "./configs/heroes.yaml")
	v.SetDefault("mock_delay_ms", 0)

	v.AutomaticEnv()

	if fs != nil {
		for name, key := range FlagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url must not be empty")
	}
	if cfg.APITimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid api_timeout_seconds (must be positive seconds)")
	}
	cfg.APITimeout = time.Duration(cfg.APITimeoutSeconds) * time.Second

	if cfg.MockDelayMs < 0 {
		return nil, fmt.Errorf("invalid mock_delay_ms (must not be negative)")
	}
	cfg.MockDelay = time.Duration(cfg.MockDelayMs) * time.Millisecond

	return &cfg, nil
}
