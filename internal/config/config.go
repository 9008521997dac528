// internal/config/config.go
//
// This package handles configuration and the .muster directory structure.
// Every project that uses Muster gets a .muster/ folder created in its root:
//
// .muster/
// ├── logs/       <- session logbook
// ├── state/      <- the roster store (bbolt)
// └── snapshots/  <- exported layout snapshots

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// MusterDir is the name of the directory we create in each project.
	MusterDir = ".muster"

	defaultSnapshotTheme = "dark"
	defaultStoreFile     = "state/roster.db"
)

const defaultProjectConfigYAML = `# muster project configuration
version: 1

board:
  # Theme used for exported layout snapshots: dark or light.
  snapshot_theme: dark

storage:
  # Store file, relative to .muster/
  file: state/roster.db
`

// BoardConfig captures board presentation preferences. These persist
// independently of the roster document and carry none of its invariants.
type BoardConfig struct {
	SnapshotTheme string `yaml:"snapshot_theme"`
}

// StorageConfig locates the roster store.
type StorageConfig struct {
	File string `yaml:"file"`
}

// ProjectConfig models .muster/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Board   BoardConfig   `yaml:"board"`
	Storage StorageConfig `yaml:"storage"`
}

// envOverrides are applied on top of the file config at load time.
type envOverrides struct {
	SnapshotTheme string `env:"MUSTER_SNAPSHOT_THEME"`
	StoreFile     string `env:"MUSTER_STORE_FILE"`
}

// Config holds the runtime configuration for Muster.
type Config struct {
	// ProjectDir is the directory where the user ran `muster` from.
	ProjectDir string

	// MusterProjectDir is ProjectDir/.muster.
	MusterProjectDir string

	Project ProjectConfig
}

// InitMusterDir creates the .muster directory structure in the given project
// directory. Called when the TUI starts up.
func InitMusterDir(projectDir string) error {
	musterDir := filepath.Join(projectDir, MusterDir)

	dirs := []string{
		filepath.Join(musterDir, "logs"),
		filepath.Join(musterDir, "state"),
		filepath.Join(musterDir, "snapshots"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return ensureProjectConfig(filepath.Join(musterDir, "config.yaml"))
}

// NewConfig creates a Config populated from .muster/config.yaml and
// MUSTER_* environment overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		MusterProjectDir: filepath.Join(projectDir, MusterDir),
		Project:          defaultProjectConfig(),
	}

	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.MusterProjectDir, "logs")
}

// SnapshotsDir returns the directory exported snapshots are written to.
func (c *Config) SnapshotsDir() string {
	return filepath.Join(c.MusterProjectDir, "snapshots")
}

// StorePath returns the on-disk location of the roster store.
func (c *Config) StorePath() string {
	file := strings.TrimSpace(c.Project.Storage.File)
	if file == "" {
		file = defaultStoreFile
	}
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(c.MusterProjectDir, file)
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.MusterProjectDir, "config.yaml")
}

// SnapshotTheme returns the configured snapshot theme.
func (c *Config) SnapshotTheme() string {
	return c.Project.Board.SnapshotTheme
}

// SetSnapshotTheme updates the snapshot theme and persists the value back to
// .muster/config.yaml.
func (c *Config) SetSnapshotTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" {
		return fmt.Errorf("config: snapshot theme is required")
	}
	c.Project.Board.SnapshotTheme = theme
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	if theme := strings.TrimSpace(overrides.SnapshotTheme); theme != "" {
		c.Project.Board.SnapshotTheme = strings.ToLower(theme)
	}
	if file := strings.TrimSpace(overrides.StoreFile); file != "" {
		c.Project.Storage.File = file
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Board:   BoardConfig{SnapshotTheme: defaultSnapshotTheme},
		Storage: StorageConfig{File: defaultStoreFile},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Board.SnapshotTheme) == "" {
		pc.Board.SnapshotTheme = defaultSnapshotTheme
	}
	if strings.TrimSpace(pc.Storage.File) == "" {
		pc.Storage.File = defaultStoreFile
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Board.SnapshotTheme = strings.ToLower(strings.TrimSpace(pc.Board.SnapshotTheme))
	pc.Storage.File = strings.TrimSpace(pc.Storage.File)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	switch pc.Board.SnapshotTheme {
	case "dark", "light":
	default:
		return fmt.Errorf("board.snapshot_theme must be 'dark' or 'light'")
	}
	if pc.Storage.File == "" {
		return fmt.Errorf("storage.file is required")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.MusterProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure muster dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
