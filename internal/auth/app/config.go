package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// SigningPassphrase is stretched into the HMAC signing key. Both halves
	// of a split deployment must agree on it.
	SigningPassphrase string        `env:"AUTH_SIGNING_PASSPHRASE,notEmpty,unset"`
	AccessTokenTTL    time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL   time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" envDefault:"168h"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`

	// RefreshStore selects where refresh tokens live: "sqlite" shares the
	// credential database, "redis" uses a dedicated instance.
	RefreshStore  string `env:"AUTH_REFRESH_STORE" envDefault:"sqlite"`
	RedisAddr     string `env:"AUTH_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"AUTH_REDIS_PASSWORD,unset"`
	RedisDB       int    `env:"AUTH_REDIS_DB" envDefault:"0"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	switch cfg.RefreshStore {
	case "sqlite", "redis":
	default:
		return Config{}, fmt.Errorf("load config: unknown AUTH_REFRESH_STORE %q", cfg.RefreshStore)
	}

	return cfg, nil
}
