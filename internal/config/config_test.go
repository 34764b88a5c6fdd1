// ABOUTME: Tests for healthtrack configuration management.
// ABOUTME: Covers load, save, defaults, environment overrides, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetListenAddr(); got != ":3000" {
		t.Errorf("GetListenAddr() = %q, want :3000", got)
	}
	ttl, err := cfg.GetTokenTTL()
	if err != nil || ttl != 7*24*time.Hour {
		t.Errorf("GetTokenTTL() = %v, %v", ttl, err)
	}
	limit, burst := cfg.GetRateLimit()
	if limit != 10 || burst != 20 {
		t.Errorf("GetRateLimit() = %v, %v", limit, burst)
	}
	if cfg.GetLogMode() != "dev" || cfg.GetLogLevel() != "info" {
		t.Errorf("log = %s/%s", cfg.GetLogMode(), cfg.GetLogLevel())
	}
}

func TestGetTokenTTL(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"24h", 24 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"forever", 0, true},
		{"-1h", 0, true},
	}
	for _, tt := range tests {
		got, err := (&Config{TokenTTL: tt.in}).GetTokenTTL()
		if (err != nil) != tt.wantErr {
			t.Errorf("GetTokenTTL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("GetTokenTTL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	// GetDataDir with empty DataDir should return storage.DataDir()
	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/healthtrack-test"}
	if got := cfg.GetDataDir(); got != "/tmp/healthtrack-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/healthtrack-test")
	}
	if got := cfg.DBPath(); got != "/tmp/healthtrack-test/healthtrack.db" {
		t.Errorf("DBPath() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/health", filepath.Join(home, "data/health")},
		{"data/health", "data/health"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/health-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "health-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.DataDir != "" || cfg.JWTSecret != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		DataDir:     "/tmp/health-data",
		JWTSecret:   "s3cret",
		RateLimit:   5,
		CORSOrigins: []string{"http://localhost:5173"},
		LocalUser:   "harper",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.DataDir != "/tmp/health-data" || loaded.JWTSecret != "s3cret" || loaded.LocalUser != "harper" {
		t.Errorf("loaded = %+v", loaded)
	}
	if limit, burst := loaded.GetRateLimit(); limit != 5 || burst != DefaultRateBurst {
		t.Errorf("rate = %v/%v", limit, burst)
	}
	if len(loaded.CORSOrigins) != 1 {
		t.Errorf("CORSOrigins = %v", loaded.CORSOrigins)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := (&Config{ListenAddr: ":8080", JWTSecret: "file"}).Save(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HEALTHTRACK_JWT_SECRET", "env")
	t.Setenv("HEALTHTRACK_RATE_BURST", "50")
	t.Setenv("HEALTHTRACK_CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want file value", cfg.ListenAddr)
	}
	if cfg.JWTSecret != "env" {
		t.Errorf("JWTSecret = %q, want env value", cfg.JWTSecret)
	}
	if cfg.RateBurst != 50 {
		t.Errorf("RateBurst = %d", cfg.RateBurst)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestEnvOverrideInvalidNumber(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HEALTHTRACK_RATE_LIMIT", "fast")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric rate limit")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{LocalUser: "me"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "healthtrack")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "healthtrack")
	_ = os.MkdirAll(configDir, 0755)
	_ = os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600)

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "healthtrack", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{DataDir: tmpDir}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "healthtrack.db")); os.IsNotExist(err) {
		t.Error("Expected healthtrack.db to be created")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Empty config should result in "{}" since fields have omitempty
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
