package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/workshop/internal/config"
	"github.com/amonks/workshop/internal/testsupport"
	"github.com/google/go-cmp/cmp"
)

func writeGlobalConfig(t *testing.T, homeDir, content string) {
	t.Helper()
	configDir := filepath.Join(homeDir, ".config", "workshop")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.ProjectFile), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
	if cfg.Addr() != "127.0.0.1:8088" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[server]
port = 9090

[todos]
filter = " Active "
seed = false

[users]
seed = false

[preferences]
theme = "dark"
notifications = false
auto-save = false
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := &config.Config{
		Server:      config.Server{Port: 9090},
		Todos:       config.Todos{Filter: "active", Seed: false},
		Users:       config.Users{Seed: false},
		Preferences: config.Preferences{Theme: "dark", Notifications: false, AutoSave: false},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, "[server\nport = ")

	if _, err := config.Load(tmpDir); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoad_PortOutOfRange(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, "[server]\nport = 70000\n")

	_, err := config.Load(tmpDir)
	if err == nil || !strings.Contains(err.Error(), "port out of range") {
		t.Fatalf("expected port range error, got %v", err)
	}
}

func TestLoad_UsesGlobalWhenProjectMissing(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `
[server]
port = 7000

[preferences]
theme = "dark"
`)

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Port = %d, expected 7000", cfg.Server.Port)
	}
	if cfg.Preferences.Theme != "dark" {
		t.Errorf("Theme = %q, expected dark", cfg.Preferences.Theme)
	}
	if !cfg.Preferences.Notifications {
		t.Error("expected Notifications default to survive")
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `
[server]
port = 7000

[todos]
filter = "completed"
seed = false

[preferences]
notifications = false
`)

	repoDir := t.TempDir()
	writeProjectConfig(t, repoDir, `
[todos]
filter = "active"

[preferences]
notifications = true
`)

	cfg, err := config.Load(repoDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Port = %d, expected global 7000", cfg.Server.Port)
	}
	if cfg.Todos.Filter != "active" {
		t.Errorf("Filter = %q, expected project value", cfg.Todos.Filter)
	}
	if cfg.Todos.Seed {
		t.Error("expected global seed = false to apply")
	}
	if !cfg.Preferences.Notifications {
		t.Error("expected project notifications = true to override global false")
	}
}

func TestPaths(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	dir := t.TempDir()

	paths, err := config.Paths(dir)
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	want := []string{
		filepath.Join(homeDir, ".config", "workshop", "config.toml"),
		filepath.Join(dir, "workshop.toml"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}
