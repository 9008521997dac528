package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitMusterDirCreatesStructure(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitMusterDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, sub := range []string{"logs", "state", "snapshots"} {
		path := filepath.Join(projectDir, MusterDir, sub)
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", path)
		}
	}
	if _, err := os.Stat(filepath.Join(projectDir, MusterDir, "config.yaml")); err != nil {
		t.Fatalf("expected default config.yaml: %v", err)
	}
}

func TestInitMusterDirKeepsExistingConfig(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitMusterDir(projectDir); err != nil {
		t.Fatalf("first init: %v", err)
	}
	custom := "version: 1\nboard:\n  snapshot_theme: light\n"
	path := filepath.Join(projectDir, MusterDir, "config.yaml")
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	if err := InitMusterDir(projectDir); err != nil {
		t.Fatalf("second init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(data) != custom {
		t.Fatalf("re-init must not clobber an existing config")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	projectDir := t.TempDir()
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.SnapshotTheme() != "dark" {
		t.Fatalf("default theme = %q, want dark", cfg.SnapshotTheme())
	}
	want := filepath.Join(projectDir, MusterDir, "state", "roster.db")
	if cfg.StorePath() != want {
		t.Fatalf("store path = %q, want %q", cfg.StorePath(), want)
	}
	if cfg.LogsDir() != filepath.Join(projectDir, MusterDir, "logs") {
		t.Fatalf("logs dir = %q", cfg.LogsDir())
	}
	if cfg.SnapshotsDir() != filepath.Join(projectDir, MusterDir, "snapshots") {
		t.Fatalf("snapshots dir = %q", cfg.SnapshotsDir())
	}
}

func TestNewConfigReadsProjectFile(t *testing.T) {
	projectDir := t.TempDir()
	musterDir := filepath.Join(projectDir, MusterDir)
	if err := os.MkdirAll(musterDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := "version: 1\nboard:\n  snapshot_theme: Light\nstorage:\n  file: state/alt.db\n"
	if err := os.WriteFile(filepath.Join(musterDir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.SnapshotTheme() != "light" {
		t.Fatalf("theme = %q, want normalized light", cfg.SnapshotTheme())
	}
	if got := cfg.StorePath(); got != filepath.Join(musterDir, "state", "alt.db") {
		t.Fatalf("store path = %q", got)
	}
}

func TestNewConfigRejectsBadTheme(t *testing.T) {
	projectDir := t.TempDir()
	musterDir := filepath.Join(projectDir, MusterDir)
	if err := os.MkdirAll(musterDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := "version: 1\nboard:\n  snapshot_theme: sepia\n"
	if err := os.WriteFile(filepath.Join(musterDir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := NewConfig(projectDir); err == nil {
		t.Fatalf("unknown theme must be rejected")
	}
}

func TestEnvOverrides(t *testing.T) {
	projectDir := t.TempDir()
	t.Setenv("MUSTER_SNAPSHOT_THEME", "LIGHT")
	t.Setenv("MUSTER_STORE_FILE", "state/override.db")

	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.SnapshotTheme() != "light" {
		t.Fatalf("env theme = %q, want light", cfg.SnapshotTheme())
	}
	want := filepath.Join(projectDir, MusterDir, "state", "override.db")
	if cfg.StorePath() != want {
		t.Fatalf("env store path = %q, want %q", cfg.StorePath(), want)
	}
}

func TestStorePathAbsoluteOverride(t *testing.T) {
	projectDir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.db")
	t.Setenv("MUSTER_STORE_FILE", abs)
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.StorePath() != abs {
		t.Fatalf("absolute override must be used verbatim, got %q", cfg.StorePath())
	}
}

func TestSetSnapshotThemePersists(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitMusterDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if err := cfg.SetSnapshotTheme(" Light "); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	reloaded, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.SnapshotTheme() != "light" {
		t.Fatalf("persisted theme = %q, want light", reloaded.SnapshotTheme())
	}

	if err := cfg.SetSnapshotTheme("sepia"); err == nil {
		t.Fatalf("invalid theme must be rejected")
	}
	data, err := os.ReadFile(cfg.ProjectConfigPath())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(data), "sepia") {
		t.Fatalf("a rejected theme must not be written to disk")
	}
}
