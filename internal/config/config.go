package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/joho/godotenv"

	"github.com/zhubert/huddle/internal/errors"
)

// DefaultServerURL is the relay address used when nothing else is configured.
const DefaultServerURL = "ws://127.0.0.1:8080/ws"

// DefaultRelayAddr is the listen address for `huddle relay`.
const DefaultRelayAddr = ":8080"

// Environment variables that override the config file.
const (
	EnvServer    = "HUDDLE_SERVER"
	EnvUsername  = "HUDDLE_USERNAME"
	EnvRelayAddr = "HUDDLE_RELAY_ADDR"
)

// Config holds the application configuration
type Config struct {
	ServerURL            string `json:"server_url,omitempty"`            // Websocket endpoint to connect to
	Username             string `json:"username,omitempty"`              // Display name sent on register
	Theme                string `json:"theme,omitempty"`                 // Dark theme name (e.g., "dark-purple", "nord")
	DarkMode             bool   `json:"dark_mode,omitempty"`             // Initial palette; the in-app toggle is not persisted
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications for messages while unfocused
	RelayAddr            string `json:"relay_addr,omitempty"`            // Listen address for the dev relay

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".huddle"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist.
// Values from the environment (and a .env file in the working directory, if
// present) override the file.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.huddle/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}

	// A missing .env is the common case; only a malformed one is worth noting.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.ConfigLoadFailed(".env", err)
	}
	cfg.applyEnv()
	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv copies overrides from the process environment.
//
// Thread-safety: only called from LoadFrom before the Config is shared.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvServer)); v != "" {
		c.ServerURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUsername)); v != "" {
		c.Username = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRelayAddr)); v != "" {
		c.RelayAddr = v
	}
}

// ensureDefaults fills in empty fields.
//
// Thread-safety: only called from LoadFrom before the Config is shared.
func (c *Config) ensureDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.RelayAddr == "" {
		c.RelayAddr = DefaultRelayAddr
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := ValidateServerURL(c.ServerURL); err != nil {
		return err
	}
	if c.Username != "" {
		if err := ValidateUsername(c.Username); err != nil {
			return err
		}
	}
	return nil
}

// ValidateServerURL requires a ws:// or wss:// URL with a host.
func ValidateServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("server url %q: %v", raw, err))
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return errors.ConfigInvalid(fmt.Sprintf("server url %q must use ws:// or wss://", raw))
	}
	if u.Host == "" {
		return errors.ConfigInvalid(fmt.Sprintf("server url %q has no host", raw))
	}
	return nil
}

// ValidateUsername rejects blank names and names containing control characters.
func ValidateUsername(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.ConfigInvalid("username cannot be blank")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.ConfigInvalid("username cannot contain control characters")
		}
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is loaded from and saved to.
func (c *Config) Path() string {
	return c.filePath
}

// GetServerURL returns the websocket endpoint
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerURL
}

// SetServerURL sets the websocket endpoint
func (c *Config) SetServerURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerURL = u
}

// GetUsername returns the display name
func (c *Config) GetUsername() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Username
}

// SetUsername sets the display name
func (c *Config) SetUsername(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Username = name
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetDarkMode returns the initial palette flag
func (c *Config) GetDarkMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DarkMode
}

// SetDarkMode sets the initial palette flag
func (c *Config) SetDarkMode(dark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DarkMode = dark
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetRelayAddr returns the dev relay listen address
func (c *Config) GetRelayAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RelayAddr
}

// SetRelayAddr sets the dev relay listen address
func (c *Config) SetRelayAddr(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RelayAddr = addr
}
