package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
		Env     string `yaml:"env"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Auth struct {
		BackendURL         string `yaml:"backend_url"`
		AccessTokenName    string `yaml:"access_token_name"`
		RefreshTokenName   string `yaml:"refresh_token_name"`
		AccessTokenMaxAge  int    `yaml:"access_token_max_age"`
		RefreshTokenMaxAge int    `yaml:"refresh_token_max_age"`
	} `yaml:"auth"`
	Locales struct {
		Supported []string `yaml:"supported"`
		Default   string   `yaml:"default"`
	} `yaml:"locales"`
}

// LoadConfig reads the YAML config and applies environment overrides.
// Missing file is not fatal: defaults plus env vars are enough to run.
func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Config file not read (%v), using env/defaults", err)
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("BACKEND_API_URL"); v != "" {
		cfg.Auth.BackendURL = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("ACCESS_TOKEN_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Auth.AccessTokenMaxAge = n
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Auth.RefreshTokenMaxAge = n
		}
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "pgx"
	}
	if cfg.Auth.BackendURL == "" {
		cfg.Auth.BackendURL = "http://localhost:8000"
	}
	if cfg.Auth.AccessTokenName == "" {
		cfg.Auth.AccessTokenName = "access_token"
	}
	if cfg.Auth.RefreshTokenName == "" {
		cfg.Auth.RefreshTokenName = "refresh_token"
	}
	if cfg.Auth.AccessTokenMaxAge == 0 {
		cfg.Auth.AccessTokenMaxAge = 60 * 60
	}
	if cfg.Auth.RefreshTokenMaxAge == 0 {
		cfg.Auth.RefreshTokenMaxAge = 60 * 60 * 24 * 7
	}
	if len(cfg.Locales.Supported) == 0 {
		cfg.Locales.Supported = []string{"en", "es"}
	}
	if cfg.Locales.Default == "" {
		cfg.Locales.Default = "en"
	}

	return cfg
}
