// ABOUTME: Healthtrack configuration management with environment overrides.
// ABOUTME: Handles server, auth, and logging settings plus the storage factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/healthtrack/internal/storage"
)

// Defaults applied when a setting is absent.
const (
	DefaultListenAddr = ":3000"
	DefaultTokenTTL   = 7 * 24 * time.Hour
	DefaultRateLimit  = 10.0
	DefaultRateBurst  = 20
	DefaultLogMode    = "dev"
	DefaultLogLevel   = "info"
)

// envPrefix marks environment variables that override the config file.
const envPrefix = "HEALTHTRACK_"

// Config stores healthtrack configuration.
type Config struct {
	// DataDir is the directory holding healthtrack.db.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/healthtrack.
	DataDir string `json:"data_dir,omitempty"`

	// ListenAddr is the HTTP server address.
	ListenAddr string `json:"listen_addr,omitempty"`

	// JWTSecret signs bearer tokens. Required for serve.
	JWTSecret string `json:"jwt_secret,omitempty"`

	// TokenTTL is a Go duration string such as "168h".
	TokenTTL string `json:"token_ttl,omitempty"`

	LogMode  string `json:"log_mode,omitempty"`
	LogLevel string `json:"log_level,omitempty"`

	// RateLimit is requests per second per client; RateBurst the bucket size.
	RateLimit float64 `json:"rate_limit,omitempty"`
	RateBurst int     `json:"rate_burst,omitempty"`

	CORSOrigins []string `json:"cors_origins,omitempty"`

	// LocalUser is the username the CLI and MCP server act as.
	LocalUser string `json:"local_user,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the SQLite database file path.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), storage.DefaultDBName)
}

// GetListenAddr returns the HTTP listen address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// GetTokenTTL parses the token lifetime.
func (c *Config) GetTokenTTL() (time.Duration, error) {
	if c.TokenTTL == "" {
		return DefaultTokenTTL, nil
	}
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("parse token_ttl: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("token_ttl must be positive, got %s", c.TokenTTL)
	}
	return d, nil
}

// GetRateLimit returns requests per second and burst size.
func (c *Config) GetRateLimit() (float64, int) {
	limit, burst := c.RateLimit, c.RateBurst
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if burst <= 0 {
		burst = DefaultRateBurst
	}
	return limit, burst
}

// GetLogMode returns the logger mode, "dev" or "prod".
func (c *Config) GetLogMode() string {
	if c.LogMode == "" {
		return DefaultLogMode
	}
	return c.LogMode
}

// GetLogLevel returns the minimum log level.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store in the configured data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.DBPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthtrack", "config.json")
}

// Load reads config from disk and applies HEALTHTRACK_* environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath())
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"DATA_DIR":    &c.DataDir,
		"LISTEN_ADDR": &c.ListenAddr,
		"JWT_SECRET":  &c.JWTSecret,
		"TOKEN_TTL":   &c.TokenTTL,
		"LOG_MODE":    &c.LogMode,
		"LOG_LEVEL":   &c.LogLevel,
		"LOCAL_USER":  &c.LocalUser,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse %sRATE_LIMIT: %w", envPrefix, err)
		}
		c.RateLimit = f
	}
	if v, ok := os.LookupEnv(envPrefix + "RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sRATE_BURST: %w", envPrefix, err)
		}
		c.RateBurst = n
	}
	if v, ok := os.LookupEnv(envPrefix + "CORS_ORIGINS"); ok {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
