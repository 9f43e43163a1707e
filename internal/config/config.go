package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	DB       DBConfig
	Redis    RedisConfig
	Adjutor  AdjutorConfig
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"ledger"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// MigrationURL is the same URL; golang-migrate takes it verbatim.
func (d DBConfig) MigrationURL() string {
	return d.DSN()
}

// RedisConfig is optional: an empty Addr disables the read cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"30s"`
}

type AdjutorConfig struct {
	BaseURL string        `envconfig:"ADJUTOR_BASE_URL" default:"https://adjutor.lendsqr.com/v2/verification/karma"`
	APIKey  string        `envconfig:"ADJUTOR_API_KEY" default:""`
	Timeout time.Duration `envconfig:"ADJUTOR_TIMEOUT" default:"5s"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}
