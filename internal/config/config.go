package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string        `env:"DATABASE_URL"`
	Store       string        `env:"STORE" env-default:"postgres"` // postgres|memory
	HTTPAddr    string        `env:"HTTP_ADDR" env-default:":8080"`
	LogLevel    string        `env:"LOG_LEVEL" env-default:"info"`
	Env         string        `env:"ENV" env-default:"dev"` // dev|prod
	SentryDSN   string        `env:"SENTRY_DSN"`
	TZ          string        `env:"TZ" env-default:"Europe/Madrid"`
	ExportDir   string        `env:"EXPORT_DIR" env-default:"exports"`
	DocumentDir string        `env:"DOCUMENT_DIR" env-default:"documents"`
	DBTimeout   time.Duration `env:"DB_TIMEOUT" env-default:"5s"`

	Location *time.Location
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Store = strings.ToLower(cfg.Store)
	switch cfg.Store {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when STORE=postgres")
		}
	case "memory":
	default:
		return nil, fmt.Errorf("config: STORE must be postgres or memory, got %q", cfg.Store)
	}
	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		loc = time.Local
	}
	cfg.Location = loc
	return &cfg, nil
}
