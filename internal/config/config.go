// Package config loads runtime settings from the environment and opens the
// stores the server depends on.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port        int `env:"PORT"         envDefault:"3000"`
	GRPCPort    int `env:"GRPC_PORT"    envDefault:"50051"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"2112"`

	Database DatabaseConfig
	Redis    RedisConfig
}

// DatabaseConfig accepts either a single connection string (URL or
// POSTGRES_DSN) or the discrete DB_* values.
type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER"    envDefault:"postgres"`
	URL      string `env:"DATABASE_URL"`
	DSN      string `env:"POSTGRES_DSN"`
	Host     string `env:"DB_HOST"      envDefault:"localhost"`
	User     string `env:"DB_USER"      envDefault:"postgres"`
	Password string `env:"DB_PASS"`
	Name     string `env:"DB_NAME"      envDefault:"blog"`
	Port     int    `env:"DB_PORT"      envDefault:"5432"`
	SSLMode  string `env:"DB_SSLMODE"   envDefault:"disable"`
}

// RedisConfig enables the feed cache when Addr is set.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"       envDefault:"0"`
	FeedTTL  time.Duration `env:"FEED_CACHE_TTL" envDefault:"30s"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// ConnString returns the connection string, preferring an explicit one.
func (d DatabaseConfig) ConnString() string {
	if d.URL != "" {
		return d.URL
	}
	if d.DSN != "" {
		return d.DSN
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}
