package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment holds process-level settings resolved before the YAML
// config is read.
type Environment struct {
	ConfigPath string
}

// LoadEnv loads a .env file when present and resolves process-level
// settings. Missing .env files are not an error.
func LoadEnv() *Environment {
	_ = godotenv.Load()

	return &Environment{
		ConfigPath: getEnv("STAGETRIBE_CONFIG_PATH", "config.yml"),
	}
}

// applyEnvOverrides lets deployment environments override secrets and
// connection endpoints without editing the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STAGETRIBE_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("STAGETRIBE_API_KEY_HASH"); v != "" {
		cfg.API.KeyHash = v
	}
	if v := os.Getenv("STAGETRIBE_DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("STAGETRIBE_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("STAGETRIBE_STORAGE_AUTH_KEY"); v != "" {
		cfg.Storage.AuthKey = v
	}
	if v := os.Getenv("STAGETRIBE_PORT"); v != "" {
		if port, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Server.Port = port
		}
	}
}

// getEnv gets the environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
