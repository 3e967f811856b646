package shared

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	AuthProviderLocal    = "local"
	AuthProviderSupabase = "supabase"

	ContentProviderOpenAI = "openai"
	ContentProviderStatic = "static"

	JournalBackendDatabase = "database"
	JournalBackendLocal    = "local"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	App      AppConfig      `toml:"app"`
	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	Provider ProviderConfig `toml:"provider"`
	Journal  JournalConfig  `toml:"journal"`
}

// AppConfig contains settings that apply to every surface.
type AppConfig struct {
	Timezone string `toml:"timezone"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host          string  `toml:"host"`
	Port          int     `toml:"port"`
	CookieName    string  `toml:"cookie_name"`
	SecureCookies bool    `toml:"secure_cookies"`
	LoginRate     float64 `toml:"login_rate"`
	LoginBurst    int     `toml:"login_burst"`
}

// AuthConfig selects and configures the auth provider.
type AuthConfig struct {
	Provider        string        `toml:"provider"`
	SessionTTL      time.Duration `toml:"session_ttl"`
	SupabaseURL     string        `toml:"supabase_url"`
	SupabaseAnonKey string        `toml:"supabase_anon_key"`
}

// ProviderConfig configures the generative content provider.
type ProviderConfig struct {
	Kind           string        `toml:"kind"`
	BaseURL        string        `toml:"base_url"`
	APIKey         string        `toml:"api_key"`
	Model          string        `toml:"model"`
	PlaylistSize   int           `toml:"playlist_size"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// JournalConfig selects where journal entries are stored.
type JournalConfig struct {
	Backend   string `toml:"backend"`
	LocalPath string `toml:"local_path"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
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
		return fmt.Errorf("config file already exists at %s: %w", path, ErrAlreadyExists)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks enumerated settings and numeric bounds.
func (c *Config) Validate() error {
	switch c.Auth.Provider {
	case AuthProviderLocal:
	case AuthProviderSupabase:
		if c.Auth.SupabaseURL == "" || c.Auth.SupabaseAnonKey == "" {
			return fmt.Errorf("%w: supabase auth needs supabase_url and supabase_anon_key", ErrMissingCredentials)
		}
	default:
		return fmt.Errorf("%w: auth.provider %q", ErrInvalidConfig, c.Auth.Provider)
	}

	switch c.Provider.Kind {
	case ContentProviderStatic:
	case ContentProviderOpenAI:
		if c.Provider.APIKey == "" {
			return fmt.Errorf("%w: provider.api_key", ErrMissingCredentials)
		}
	default:
		return fmt.Errorf("%w: provider.kind %q", ErrInvalidConfig, c.Provider.Kind)
	}

	switch c.Journal.Backend {
	case JournalBackendDatabase:
	case JournalBackendLocal:
		if c.Journal.LocalPath == "" {
			return fmt.Errorf("%w: journal.local_path", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: journal.backend %q", ErrInvalidConfig, c.Journal.Backend)
	}

	if c.Provider.PlaylistSize <= 0 {
		return fmt.Errorf("%w: provider.playlist_size must be positive", ErrInvalidConfig)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Location resolves app.timezone, defaulting to [time.Local].
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: app.timezone %q", ErrInvalidConfig, c.App.Timezone)
	}
	return loc, nil
}
