// Package config handles the XDG configuration directory, config.toml and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "minitask"

	// ConfigFile is the optional settings file inside the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename (google backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (google backend).
	TokenFile = "token.json"

	// DBFile is the SQLite database filename (local backend).
	DBFile = "tasks.db"
)

// Backends.
const (
	BackendLocal  = "local"
	BackendREST   = "rest"
	BackendGoogle = "google"
)

// Defaults.
const (
	DefaultBackend        = BackendLocal
	DefaultBaseURL        = "http://localhost:8080/api/v1"
	DefaultListen         = "localhost:8080"
	DefaultTimeoutSeconds = 5
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	Backend        string `toml:"backend"`
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	Listen         string `toml:"listen"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// New creates a Config for configDir (or the default directory when empty),
// reads config.toml if present and applies MINITASK_* overrides.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:            dir,
		Backend:        DefaultBackend,
		BaseURL:        DefaultBaseURL,
		Listen:         DefaultListen,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}

	if _, err := toml.DecodeFile(cfg.ConfigPath(), cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("MINITASK_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("MINITASK_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("MINITASK_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("MINITASK_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("MINITASK_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MINITASK_TIMEOUT_SECONDS: %s", v)
		}
		c.TimeoutSeconds = n
	}
	return nil
}

// Validate checks the backend name and timeout.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal, BackendREST, BackendGoogle:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-call backend timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DBPath returns the path to the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.Dir, DBFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
