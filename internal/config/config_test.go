package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; unset so defaults apply even
	// when the test environment carries these variables.
	for _, key := range []string{
		"HTTP_ADDR", "MONGO_URL", "MONGO_DB", "REDIS_URL",
		"LOG_LEVEL", "NEARBY_CACHE_TTL", "SEED_DEMO",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q, want :8000", cfg.HTTPAddr)
	}
	if cfg.MongoDB != "pandora" {
		t.Errorf("MongoDB = %q, want pandora", cfg.MongoDB)
	}
	if cfg.NearbyCacheTTL != 15*time.Second {
		t.Errorf("NearbyCacheTTL = %v, want 15s", cfg.NearbyCacheTTL)
	}
	if cfg.SeedDemo {
		t.Errorf("SeedDemo should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("MONGO_URL", "mongodb://db:27017")
	t.Setenv("NEARBY_CACHE_TTL", "1m")
	t.Setenv("SEED_DEMO", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q, want :9999", cfg.HTTPAddr)
	}
	if cfg.MongoURL != "mongodb://db:27017" {
		t.Errorf("MongoURL = %q", cfg.MongoURL)
	}
	if cfg.NearbyCacheTTL != time.Minute {
		t.Errorf("NearbyCacheTTL = %v, want 1m", cfg.NearbyCacheTTL)
	}
	if !cfg.SeedDemo {
		t.Errorf("SeedDemo should be true")
	}
}
