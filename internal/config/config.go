package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/stagetribe/stagetribe/internal/secrets"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Push     PushConfig     `yaml:"push"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// APIConfig holds platform-wide API settings
type APIConfig struct {
	Root               string   `yaml:"root"`
	Key                string   `yaml:"key"`
	KeyHash            string   `yaml:"key_hash"`
	VerifyUserAgent    bool     `yaml:"verify_user_agent"`
	RowsPerPage        int      `yaml:"rows_per_page"`
	UploadLimit        int      `yaml:"upload_limit"`
	BoosterExtraLimit  int      `yaml:"booster_extra_limit"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// DatabaseConfig holds the relational store configuration. The users
// database follows the configured adapter; level data lives in its own
// store so blob traffic never contends with account lookups.
type DatabaseConfig struct {
	Adapter      string `yaml:"adapter"` // postgres, sqlite
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	UsersDBPath  string `yaml:"users_db_path"`
	LevelsDBPath string `yaml:"levels_db_path"`
	Debug        bool   `yaml:"debug"`
}

// RedisConfig holds the stats counter backend configuration
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       int    `yaml:"database"`
	Password string `yaml:"password"`
}

// StorageConfig selects and parameterizes the level storage provider
type StorageConfig struct {
	Provider            string `yaml:"provider"` // database, discord, onedrive-cf, onemanager
	URL                 string `yaml:"url"`
	AuthKey             string `yaml:"auth_key"`
	Proxied             bool   `yaml:"proxied"`
	AttachmentChannelID string `yaml:"attachment_channel_id"`
}

// PushConfig holds webhook dispatch configuration
type PushConfig struct {
	EngineBot EngineBotPushConfig `yaml:"engine_bot"`
	Discord   DiscordPushConfig   `yaml:"discord"`
}

// EngineBotPushConfig configures Engine-Bot webhook targets
type EngineBotPushConfig struct {
	Enabled          bool     `yaml:"enabled"`
	EnableNewArrival bool     `yaml:"enable_new_arrival"`
	URLs             []string `yaml:"urls"`
}

// DiscordPushConfig configures Discord-style webhook targets
type DiscordPushConfig struct {
	Enabled          bool     `yaml:"enabled"`
	EnableNewArrival bool     `yaml:"enable_new_arrival"`
	URLs             []string `yaml:"urls"`
	Avatar           string   `yaml:"avatar"`
	Nickname         string   `yaml:"nickname"`
	ServerName       string   `yaml:"server_name"`
}

// LoggingConfig holds logging-specific configuration
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from a YAML file and applies environment overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 35000
	}
	if c.API.RowsPerPage == 0 {
		c.API.RowsPerPage = 20
	}
	if c.Database.Adapter == "" {
		c.Database.Adapter = "sqlite"
	}
	if c.Database.UsersDBPath == "" {
		c.Database.UsersDBPath = "users.db"
	}
	if c.Database.LevelsDBPath == "" {
		c.Database.LevelsDBPath = "levels.db"
	}
	if c.Storage.Provider == "" {
		c.Storage.Provider = "database"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	switch c.Database.Adapter {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database adapter: %s", c.Database.Adapter)
	}
	switch c.Storage.Provider {
	case "database", "discord", "onedrive-cf", "onemanager":
	default:
		return fmt.Errorf("unsupported storage provider: %s", c.Storage.Provider)
	}
	return nil
}

// VerifyKey checks a caller-supplied admin API key. When a key hash is
// configured it takes precedence over the plaintext key.
func (a *APIConfig) VerifyKey(provided string) bool {
	if a.KeyHash != "" {
		return secrets.Verify(provided, a.KeyHash)
	}
	if a.Key == "" {
		return false
	}
	return secrets.Equal(provided, a.Key)
}

// Address returns the server address in the format "host:port"
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Address returns the redis address in the format "host:port"
func (r *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DSN returns the postgres connection string for the users database
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteDSNValue(d.Host),
		d.Port,
		quoteDSNValue(d.User),
		quoteDSNValue(d.Password),
		quoteDSNValue(d.DBName),
		quoteDSNValue(d.SSLMode),
	)
}

// quoteDSNValue quotes a DSN value if it contains spaces or special characters.
// Single quotes inside the value are escaped by doubling them.
func quoteDSNValue(value string) string {
	needsQuoting := false
	for _, r := range value {
		if r == ' ' || r == '\'' || r == '\\' || r == '=' {
			needsQuoting = true
			break
		}
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '-' || r == '_' || r == '/' || r == '@' || r == ':') {
			needsQuoting = true
			break
		}
	}

	if !needsQuoting {
		return value
	}

	escaped := strings.ReplaceAll(value, "'", "''")
	return "'" + escaped + "'"
}
