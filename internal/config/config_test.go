package config

import (
	"os"
	"testing"
	"time"

	"github.com/Jayparmar2411/Nutrivision/internal/gateway"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"API_KEYS", "MODEL", "BASE_URL", "KEY_STRATEGY", "TIMEOUT", "MAX_RETRIES", "ADVICE_CACHE_TTL", "DB_PATH", "LOG_LEVEL"} {
		key := envPrefix + "_" + name
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, prev) })
		}
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.Model != gateway.DefaultModel {
		t.Fatalf("unexpected default model: %s", cfg.Model)
	}
	if cfg.KeyStrategy != gateway.StrategyRandom || cfg.MaxRetries != 2 || cfg.Timeout != time.Minute {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Keys()) != 0 {
		t.Fatalf("expected no keys, got %v", cfg.Keys())
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("NUTRIVISION_API_KEYS", "alpha-1234, beta-5678")
	t.Setenv("NUTRIVISION_KEY_STRATEGY", "round-robin")
	t.Setenv("NUTRIVISION_ADVICE_CACHE_TTL", "0s")
	t.Setenv("NUTRIVISION_DB_PATH", "/tmp/n.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if got := cfg.Keys(); len(got) != 2 || got[0] != "alpha-1234" || got[1] != "beta-5678" {
		t.Fatalf("keys override failed, got %v", got)
	}
	if got := cfg.Redacted(); got[0] != "****1234" || got[1] != "****5678" {
		t.Fatalf("unexpected redaction: %v", got)
	}
	if cfg.KeyStrategy != gateway.StrategyRoundRobin || cfg.AdviceCacheTTL != 0 || cfg.DBPath != "/tmp/n.db" {
		t.Fatalf("env override failed: %+v", cfg)
	}
}

func TestConfigLoad_RejectsInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("NUTRIVISION_KEY_STRATEGY", "weighted")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown key strategy")
	}

	clearEnv(t)
	t.Setenv("NUTRIVISION_MAX_RETRIES", "many")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric retries")
	}
}
