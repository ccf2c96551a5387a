package config

import (
	"fmt"
	"time"

	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Server   ServerConfig
		Dataset  DatasetConfig
		Database DatabaseConfig
		Auth     Auth
		Logging  LoggingConfig
	}

	ServerConfig struct {
		Host string `env:"SERVER_HOST" default:"0.0.0.0"`
		Port string `env:"SERVER_PORT" default:"3000"`
	}

	DatasetConfig struct {
		// Source selects the loader backend: "file" reads the Parquet
		// file at Path, "postgres" reads the trips table.
		Source string `env:"DATASET_SOURCE" default:"file"`
		Path   string `env:"DATASET_PATH" default:"data/uber_trips.parquet"`
		Table  string `env:"DATASET_TABLE" default:"trips"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"tripdash_user"`
		Password string `env:"DATABASE_PASSWORD" default:"tripdash_pass"`
		Database string `env:"DATABASE_DATABASE" default:"tripdash_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"10"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"1"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	Auth struct {
		// DashboardSecret is the shared password the access gate compares
		// against. Empty means the gate denies everything.
		DashboardSecret string        `env:"AUTH_DASHBOARD_SECRET"`
		JWTSecret       string        `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
		SessionTTL      time.Duration `env:"AUTH_SESSION_TTL" default:"1h"`
	}

	LoggingConfig struct {
		Level string `env:"LOG_LEVEL" default:"INFO"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c DatasetConfig) SourceType() types.DatasetSource {
	return types.DatasetSource(c.Source)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	return cfg, nil
}
