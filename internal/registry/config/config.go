package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageMongo  = "mongo"
	StorageSQLite = "sqlite"
)

type Config struct {
	Port                string        `env:"PORT" envDefault:"8080"`
	Storage             string        `env:"STORAGE" envDefault:"mongo"`
	MongoURI            string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	DBName              string        `env:"DB_NAME" envDefault:"lotadmin"`
	CustomersCollection string        `env:"COLLECTION_CUSTOMERS" envDefault:"customers"`
	LotsCollection      string        `env:"COLLECTION_LOTS" envDefault:"lots"`
	HistoryCollection   string        `env:"COLLECTION_HISTORY" envDefault:"change_history"`
	SQLitePath          string        `env:"SQLITE_PATH" envDefault:"./lotadmin.db"`
	ReadTimeout         time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout        time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile             string        `env:"LOG_FILE"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.Storage {
	case StorageMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported STORAGE %q", c.Storage)
	}
	return nil
}
