package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfigYAML = `server:
  host: "127.0.0.1"
  port: 35010
api:
  root: "https://api.example.com/"
  key: "super-secret"
  verify_user_agent: true
  upload_limit: 25
  booster_extra_limit: 10
  cors_allowed_origins:
    - "https://example.com"
database:
  adapter: "postgres"
  host: "localhost"
  port: 5432
  user: "stagetribe"
  password: "hunter2"
  dbname: "stagetribe"
  sslmode: "disable"
redis:
  host: "localhost"
  port: 6379
  database: 0
storage:
  provider: "database"
push:
  engine_bot:
    enabled: true
    urls:
      - "https://bot.example.com/push"
logging:
  level: "debug"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfigYAML))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Address() != "127.0.0.1:35010" {
		t.Errorf("Server.Address() = %q", cfg.Server.Address())
	}
	if cfg.API.Root != "https://api.example.com/" {
		t.Errorf("API.Root = %q", cfg.API.Root)
	}
	if cfg.API.UploadLimit != 25 || cfg.API.BoosterExtraLimit != 10 {
		t.Errorf("upload limits = (%d, %d), want (25, 10)", cfg.API.UploadLimit, cfg.API.BoosterExtraLimit)
	}
	if !cfg.API.VerifyUserAgent {
		t.Errorf("API.VerifyUserAgent = false, want true")
	}
	if cfg.Database.Adapter != "postgres" {
		t.Errorf("Database.Adapter = %q", cfg.Database.Adapter)
	}
	if cfg.Redis.Address() != "localhost:6379" {
		t.Errorf("Redis.Address() = %q", cfg.Redis.Address())
	}
	if cfg.Storage.Provider != "database" {
		t.Errorf("Storage.Provider = %q", cfg.Storage.Provider)
	}
	if !cfg.Push.EngineBot.Enabled || len(cfg.Push.EngineBot.URLs) != 1 {
		t.Errorf("Push.EngineBot not parsed: %+v", cfg.Push.EngineBot)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "api:\n  key: \"k\"\n"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 35000 {
		t.Errorf("default port = %d, want 35000", cfg.Server.Port)
	}
	if cfg.Database.Adapter != "sqlite" {
		t.Errorf("default adapter = %q, want sqlite", cfg.Database.Adapter)
	}
	if cfg.Database.LevelsDBPath != "levels.db" {
		t.Errorf("default levels path = %q, want levels.db", cfg.Database.LevelsDBPath)
	}
	if cfg.Storage.Provider != "database" {
		t.Errorf("default storage provider = %q, want database", cfg.Storage.Provider)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_InvalidAdapter(t *testing.T) {
	_, err := Load(writeConfig(t, "database:\n  adapter: \"mongodb\"\n"))
	if err == nil {
		t.Errorf("Load() accepted an unsupported adapter")
	}
}

func TestLoad_InvalidStorageProvider(t *testing.T) {
	_, err := Load(writeConfig(t, "storage:\n  provider: \"floppy\"\n"))
	if err == nil {
		t.Errorf("Load() accepted an unsupported storage provider")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STAGETRIBE_API_KEY", "env-key")
	t.Setenv("STAGETRIBE_DATABASE_PASSWORD", "env-pass")
	t.Setenv("STAGETRIBE_PORT", "9999")

	cfg, err := Load(writeConfig(t, testConfigYAML))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.API.Key != "env-key" {
		t.Errorf("API.Key = %q, want env override", cfg.API.Key)
	}
	if cfg.Database.Password != "env-pass" {
		t.Errorf("Database.Password = %q, want env override", cfg.Database.Password)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "stagetribe",
		Password: "pass word",
		DBName:   "stagetribe",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	want := "host=localhost port=5432 user=stagetribe password='pass word' dbname=stagetribe sslmode=disable"
	if dsn != want {
		t.Errorf("DSN() = %q, want %q", dsn, want)
	}
}

func TestAPIConfig_VerifyKey(t *testing.T) {
	plain := &APIConfig{Key: "secret"}
	if !plain.VerifyKey("secret") {
		t.Errorf("VerifyKey() rejected the configured key")
	}
	if plain.VerifyKey("wrong") {
		t.Errorf("VerifyKey() accepted a wrong key")
	}

	empty := &APIConfig{}
	if empty.VerifyKey("") {
		t.Errorf("VerifyKey() accepted an empty key with no key configured")
	}
}
