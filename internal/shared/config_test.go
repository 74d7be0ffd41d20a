package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./muse.db" {
			t.Errorf("expected database path ./muse.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}
		if config.Session.Backend != "memory" {
			t.Errorf("expected memory session backend, got %s", config.Session.Backend)
		}
		if config.Catalog.BaseURL != "https://musicbrainz.org/ws/2" {
			t.Errorf("expected MusicBrainz base URL, got %s", config.Catalog.BaseURL)
		}
		if config.Catalog.RateLimit != 1.0 {
			t.Errorf("expected rate limit 1.0, got %v", config.Catalog.RateLimit)
		}
		if config.Auth.BcryptCost != 10 {
			t.Errorf("expected bcrypt cost 10, got %d", config.Auth.BcryptCost)
		}
	})

	t.Run("Durations", func(t *testing.T) {
		config := DefaultConfig()

		if got := config.Session.TTL(); got != 24*time.Hour {
			t.Errorf("expected session TTL 24h, got %v", got)
		}
		if got := config.Session.WorkflowTTL(); got != 30*time.Minute {
			t.Errorf("expected workflow TTL 30m, got %v", got)
		}
		if got := config.Catalog.Timeout(); got != 10*time.Second {
			t.Errorf("expected catalog timeout 10s, got %v", got)
		}
		if got := config.Server.Addr(); got != "127.0.0.1:3000" {
			t.Errorf("expected addr 127.0.0.1:3000, got %s", got)
		}
	})

	t.Run("Catalog SiteURL", func(t *testing.T) {
		tests := []struct {
			baseURL string
			want    string
		}{
			{"https://musicbrainz.org/ws/2", "https://musicbrainz.org"},
			{"https://musicbrainz.org/ws/2/", "https://musicbrainz.org"},
			{"http://mirror.local:5000/ws/2", "http://mirror.local:5000"},
			{"http://mirror.local:5000", "http://mirror.local:5000"},
			{"", DefaultCatalogSiteURL},
		}

		for _, tt := range tests {
			got := CatalogConfig{BaseURL: tt.baseURL}.SiteURL()
			if got != tt.want {
				t.Errorf("SiteURL(%q) = %q, want %q", tt.baseURL, got, tt.want)
			}
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20

[server]
host = "0.0.0.0"
port = 8080

[session]
backend = "redis"
redis_addr = "redis:6379"

[catalog]
base_url = "http://localhost:5000/ws/2"
user_agent = "test/1.0"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if config.Session.Backend != "redis" || config.Session.RedisAddr != "redis:6379" {
			t.Errorf("unexpected session config %+v", config.Session)
		}
		if config.Catalog.UserAgent != "test/1.0" {
			t.Errorf("expected user agent test/1.0, got %s", config.Catalog.UserAgent)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("MUSE_DATABASE_PATH", "/env/muse.db")
		t.Setenv("MUSE_SERVER_PORT", "9090")
		t.Setenv("MUSE_SESSION_BACKEND", "memcached")
		t.Setenv("MUSE_SESSION_SECURE", "true")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}

		if config.Database.Path != "/env/muse.db" {
			t.Errorf("expected env database path, got %s", config.Database.Path)
		}
		if config.Server.Port != 9090 {
			t.Errorf("expected env port 9090, got %d", config.Server.Port)
		}
		if config.Session.Backend != "memcached" || !config.Session.Secure {
			t.Errorf("unexpected session config %+v", config.Session)
		}
		if config.Server.Host != "127.0.0.1" {
			t.Errorf("expected unset variables to keep defaults, got host %s", config.Server.Host)
		}
	})

	t.Run("ApplyEnv Invalid Value", func(t *testing.T) {
		t.Setenv("MUSE_SERVER_PORT", "not-a-number")

		err := ApplyEnv(DefaultConfig())
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ResolveConfig", func(t *testing.T) {
		t.Setenv("MUSE_CATALOG_USER_AGENT", "resolved/1.0")

		config, err := ResolveConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("ResolveConfig() error = %v", err)
		}
		if config.Database.Path != "./muse.db" {
			t.Errorf("expected default database path, got %s", config.Database.Path)
		}
		if config.Catalog.UserAgent != "resolved/1.0" {
			t.Errorf("expected env user agent, got %s", config.Catalog.UserAgent)
		}
	})
}
