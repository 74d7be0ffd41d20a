package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultCatalogSiteURL is the public MusicBrainz site.
const DefaultCatalogSiteURL = "https://musicbrainz.org"

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Every field can be overridden with a MUSE_* environment variable, see [ApplyEnv].
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Session  SessionConfig  `toml:"session"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Auth     AuthConfig     `toml:"auth"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"MUSE_DATABASE_PATH"`
	MaxOpenConns int    `toml:"max_open_conns" env:"MUSE_DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `toml:"max_idle_conns" env:"MUSE_DATABASE_MAX_IDLE_CONNS"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host                string `toml:"host" env:"MUSE_SERVER_HOST"`
	Port                int    `toml:"port" env:"MUSE_SERVER_PORT"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds" env:"MUSE_SERVER_READ_TIMEOUT_SECONDS"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds" env:"MUSE_SERVER_WRITE_TIMEOUT_SECONDS"`
}

// SessionConfig selects the session backend and controls the session cookie.
type SessionConfig struct {
	Backend            string `toml:"backend" env:"MUSE_SESSION_BACKEND"`
	CookieName         string `toml:"cookie_name" env:"MUSE_SESSION_COOKIE_NAME"`
	TTLMinutes         int    `toml:"ttl_minutes" env:"MUSE_SESSION_TTL_MINUTES"`
	WorkflowTTLMinutes int    `toml:"workflow_ttl_minutes" env:"MUSE_SESSION_WORKFLOW_TTL_MINUTES"`
	Secure             bool   `toml:"secure" env:"MUSE_SESSION_SECURE"`
	RedisAddr          string `toml:"redis_addr" env:"MUSE_SESSION_REDIS_ADDR"`
	RedisPassword      string `toml:"redis_password" env:"MUSE_SESSION_REDIS_PASSWORD"`
	RedisDB            int    `toml:"redis_db" env:"MUSE_SESSION_REDIS_DB"`
	MemcachedAddr      string `toml:"memcached_addr" env:"MUSE_SESSION_MEMCACHED_ADDR"`
}

// CatalogConfig contains MusicBrainz web service settings.
type CatalogConfig struct {
	BaseURL        string  `toml:"base_url" env:"MUSE_CATALOG_BASE_URL"`
	UserAgent      string  `toml:"user_agent" env:"MUSE_CATALOG_USER_AGENT"`
	RateLimit      float64 `toml:"rate_limit" env:"MUSE_CATALOG_RATE_LIMIT"`
	TimeoutSeconds int     `toml:"timeout_seconds" env:"MUSE_CATALOG_TIMEOUT_SECONDS"`
	CacheMinutes   int     `toml:"cache_minutes" env:"MUSE_CATALOG_CACHE_MINUTES"`
}

// AuthConfig contains credential hashing settings.
type AuthConfig struct {
	BcryptCost int `toml:"bcrypt_cost" env:"MUSE_AUTH_BCRYPT_COST"`
}

// Addr returns the host:port pair the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// WorkflowTTL returns how long a catalog selection stays valid inside a session.
func (s SessionConfig) WorkflowTTL() time.Duration {
	return time.Duration(s.WorkflowTTLMinutes) * time.Minute
}

// Timeout returns the HTTP client timeout for catalog requests.
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long catalog responses are cached.
func (c CatalogConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheMinutes) * time.Minute
}

// SiteURL returns the browsable catalog site behind BaseURL, used for links to catalog pages.
func (c CatalogConfig) SiteURL() string {
	site := strings.TrimSuffix(strings.TrimRight(c.BaseURL, "/"), "/ws/2")
	if site == "" {
		return DefaultCatalogSiteURL
	}
	return site
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveConfig loads the config at path when it exists, falls back to [DefaultConfig] otherwise,
// and applies environment overrides on top.
func ResolveConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}
