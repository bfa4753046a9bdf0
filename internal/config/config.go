package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		Subpath   string `json:"subpath"`
		JWTSecret string `json:"jwtSecret"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Catalog struct {
		SeedPath        string `json:"seed_path"`
		CacheTTLMinutes int    `json:"cache_ttl_minutes"`
	} `json:"catalog"`
	Log struct {
		Mode string `json:"mode"` // "dev" or "prod"
	} `json:"log"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton). A .env file, if
// present, is loaded first; MOVINGDAY_* environment variables override
// the file values so secrets never have to live in config.json.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load()
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		if v := os.Getenv("MOVINGDAY_POSTGRES_DSN"); v != "" {
			c.Postgres.DSN = v
		}
		if v := os.Getenv("MOVINGDAY_REDIS_ADDR"); v != "" {
			c.Redis.Addr = v
		}
		if v := os.Getenv("MOVINGDAY_JWT_SECRET"); v != "" {
			c.Server.JWTSecret = v
		}
		// Minimal validation
		if c.Server.JWTSecret == "" {
			cfgErr = errors.New("jwtSecret must be set in config")
			return
		}
		if c.Catalog.CacheTTLMinutes <= 0 {
			c.Catalog.CacheTTLMinutes = 15
		}
		cfg = &c
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
