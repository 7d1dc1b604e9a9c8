package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Jayparmar2411/Nutrivision/internal/gateway"
)

const envPrefix = "NUTRIVISION"

// Config holds runtime settings. Environment variables are parsed from the
// NUTRIVISION_ prefix, e.g. NUTRIVISION_API_KEYS, NUTRIVISION_MAX_RETRIES.
type Config struct {
	// Comma separated; one key is picked per call.
	APIKeys     string           `envconfig:"API_KEYS" default:""`
	Model       string           `envconfig:"MODEL" default:"gemini-2.5-flash"`
	BaseURL     string           `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com"`
	KeyStrategy gateway.Strategy `envconfig:"KEY_STRATEGY" default:"random"`

	Timeout        time.Duration `envconfig:"TIMEOUT" default:"60s"`
	MaxRetries     uint64        `envconfig:"MAX_RETRIES" default:"2"`
	AdviceCacheTTL time.Duration `envconfig:"ADVICE_CACHE_TTL" default:"10m"`

	// Empty means the per-user default location.
	DBPath   string `envconfig:"DB_PATH" default:""`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.KeyStrategy {
	case gateway.StrategyRandom, gateway.StrategyRoundRobin:
	default:
		return fmt.Errorf("unsupported KEY_STRATEGY: %s", c.KeyStrategy)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("TIMEOUT must be > 0, got %s", c.Timeout)
	}
	if c.AdviceCacheTTL < 0 {
		return fmt.Errorf("ADVICE_CACHE_TTL must be >= 0, got %s", c.AdviceCacheTTL)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("MODEL must not be empty")
	}
	return nil
}

func (c *Config) Keys() []string {
	return gateway.ParseKeys(c.APIKeys)
}

// Redacted returns the key list with every key masked, for display.
func (c *Config) Redacted() []string {
	keys := c.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		if len(k) <= 4 {
			out[i] = "****"
			continue
		}
		out[i] = "****" + k[len(k)-4:]
	}
	return out
}
