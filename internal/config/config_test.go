package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.com")
	t.Setenv("PORT", "")
	t.Setenv("VAULT_PATH", "")
	t.Setenv("VAULT_KEY_PATH", "")
	t.Setenv("REFRESH_INTERVAL", "")
	t.Setenv("REQUEST_TIMEOUT", "")

	cfg := LoadFromEnv()
	if cfg.BackendURL != "https://api.example.com" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.RefreshInterval != 15*time.Minute {
		t.Errorf("RefreshInterval = %v, want 15m", cfg.RefreshInterval)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "  https://api.example.com  ")
	t.Setenv("PORT", "8080")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("REQUEST_TIMEOUT", "bogus")

	cfg := LoadFromEnv()
	if cfg.BackendURL != "https://api.example.com" {
		t.Errorf("BackendURL = %q, want trimmed", cfg.BackendURL)
	}
	if cfg.ListenAddr != "127.0.0.1:8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("RefreshInterval = %v, want 5m", cfg.RefreshInterval)
	}
	// Unparsable durations keep the default.
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	data := []byte("backend_url: https://file.example.com\nrefresh_interval: 10m\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	base := Config{
		BackendURL:      "https://env.example.com",
		ListenAddr:      DefaultListenAddr,
		RefreshInterval: 15 * time.Minute,
		RequestTimeout:  30 * time.Second,
	}
	cfg, err := LoadFile(base, path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.BackendURL != "https://file.example.com" {
		t.Errorf("BackendURL = %q, want file value", cfg.BackendURL)
	}
	if cfg.RefreshInterval != 10*time.Minute {
		t.Errorf("RefreshInterval = %v, want 10m", cfg.RefreshInterval)
	}
	// Fields the file leaves out keep their current values.
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
}

func TestLoadFileMissing(t *testing.T) {
	base := Config{BackendURL: "https://env.example.com"}
	if _, err := LoadFile(base, filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); !errors.Is(err, ErrMissingBackendURL) {
		t.Errorf("err = %v, want ErrMissingBackendURL", err)
	}
	if err := (Config{BackendURL: "https://api.example.com"}).Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
