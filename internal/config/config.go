package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath        string        `env:"DB_PATH" envDefault:"data/openguessr.db"`
	LogLevel      slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir        string        `env:"SPA_DIR" envDefault:"public"`
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTTTL        time.Duration `env:"JWT_TTL" envDefault:"336h"`
	RoundsPerGame int           `env:"ROUNDS_PER_GAME" envDefault:"5"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.RoundsPerGame < 1 {
		return nil, fmt.Errorf("ROUNDS_PER_GAME must be at least 1, got %d", cfg.RoundsPerGame)
	}
	return &cfg, nil
}
