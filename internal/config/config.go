package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Common errors
var (
	ErrMissingBackendURL = errors.New("BACKEND_URL environment variable is required")
)

// Config holds everything the portal front-end needs to run: where the
// backend lives, where to listen, and where the local vault keeps its state.
type Config struct {
	// BackendURL is the base URL of the workshop registration backend.
	BackendURL string `yaml:"backend_url"`

	// ListenAddr is the local address the front-end serves on.
	ListenAddr string `yaml:"listen_addr"`

	// VaultPath is the SQLite file backing durable client storage.
	VaultPath string `yaml:"vault_path"`

	// VaultKeyPath is the file holding the local token-sealing key.
	VaultKeyPath string `yaml:"vault_key_path"`

	// RefreshInterval is how often the session store silently refreshes a
	// present token.
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DefaultListenAddr is where the front-end serves when PORT is unset.
const DefaultListenAddr = "127.0.0.1:4173"

// LoadFromEnv loads configuration from environment variables.
//
// Environment variables:
//   - BACKEND_URL: base URL of the backend (required)
//   - PORT: local port to listen on (default: 4173 on loopback)
//   - VAULT_PATH: SQLite file for durable client storage (default: portal.db)
//   - VAULT_KEY_PATH: token-sealing key file (default: portal.key)
//   - REFRESH_INTERVAL: token refresh cadence (default: 15m)
//   - REQUEST_TIMEOUT: per-request backend timeout (default: 30s)
func LoadFromEnv() Config {
	cfg := Config{
		BackendURL:      strings.TrimSpace(os.Getenv("BACKEND_URL")),
		ListenAddr:      DefaultListenAddr,
		VaultPath:       "portal.db",
		VaultKeyPath:    "portal.key",
		RefreshInterval: 15 * time.Minute,
		RequestTimeout:  30 * time.Second,
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.ListenAddr = "127.0.0.1:" + port
	}
	if p := strings.TrimSpace(os.Getenv("VAULT_PATH")); p != "" {
		cfg.VaultPath = p
	}
	if p := strings.TrimSpace(os.Getenv("VAULT_KEY_PATH")); p != "" {
		cfg.VaultKeyPath = p
	}
	if d := strings.TrimSpace(os.Getenv("REFRESH_INTERVAL")); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil {
			cfg.RefreshInterval = parsed
		}
	}
	if d := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil {
			cfg.RequestTimeout = parsed
		}
	}

	return cfg
}

// LoadFile overlays values from a YAML config file onto cfg. Fields left
// empty in the file keep their current values.
func LoadFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	if file.BackendURL != "" {
		cfg.BackendURL = file.BackendURL
	}
	if file.ListenAddr != "" {
		cfg.ListenAddr = file.ListenAddr
	}
	if file.VaultPath != "" {
		cfg.VaultPath = file.VaultPath
	}
	if file.VaultKeyPath != "" {
		cfg.VaultKeyPath = file.VaultKeyPath
	}
	if file.RefreshInterval != 0 {
		cfg.RefreshInterval = file.RefreshInterval
	}
	if file.RequestTimeout != 0 {
		cfg.RequestTimeout = file.RequestTimeout
	}

	return cfg, nil
}

// Validate checks that the configuration can actually reach a backend.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return ErrMissingBackendURL
	}
	return nil
}
