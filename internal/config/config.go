package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8000"`
	MongoURL       string        `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	MongoDB        string        `env:"MONGO_DB" envDefault:"pandora"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	NearbyCacheTTL time.Duration `env:"NEARBY_CACHE_TTL" envDefault:"15s"`
	SeedDemo       bool          `env:"SEED_DEMO" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
