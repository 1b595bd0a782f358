package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	FileName = "focusflow.yaml"
)

type Config struct {
	DataDir      string `yaml:"-"`
	Backend      string `yaml:"backend"`
	SnapshotPath string `yaml:"snapshot_path"`
	DBPath       string `yaml:"db_path"`
	Locale       string `yaml:"locale"`
	LogLevel     string `yaml:"log_level"`
}

// New builds the default configuration rooted at dataDir and overlays
// focusflow.yaml from that directory plus FOCUSFLOW_* environment variables.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:      dataDir,
		Backend:      BackendFile,
		SnapshotPath: filepath.Join(dataDir, "focusflow_data_v1.json"),
		DBPath:       filepath.Join(dataDir, "focusflow.db"),
		Locale:       "en",
		LogLevel:     "warn",
	}
	if err := cfg.loadFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}
	cfg.loadEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultDataDir resolves ~/.focusflow, falling back to the working directory.
func DefaultDataDir() string {
	if dir := os.Getenv("FOCUSFLOW_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusflow"
	}
	return filepath.Join(home, ".focusflow")
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unsupported backend %q", c.Backend)
	}
	switch c.Locale {
	case "en", "es":
	default:
		return fmt.Errorf("unsupported locale %q", c.Locale)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(payload, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	c.SnapshotPath = c.resolve(c.SnapshotPath)
	c.DBPath = c.resolve(c.DBPath)
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv("FOCUSFLOW_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("FOCUSFLOW_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("FOCUSFLOW_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FOCUSFLOW_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil && on {
			c.LogLevel = "debug"
		}
	}
}

func (c Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}
