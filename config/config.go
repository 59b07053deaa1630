package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside the data directory.
const FileName = "cssvars.yaml"

type Config struct {
	DataDir        string        `yaml:"data_dir"`
	ListenAddr     string        `yaml:"listen_addr"`
	DefinitionsDir string        `yaml:"definitions_dir,omitempty"`
	ExportDir      string        `yaml:"export_dir,omitempty"`
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

func Default() Config {
	return Config{
		DataDir:        ".",
		ListenAddr:     ":8080",
		DefinitionsDir: "themes",
		ExportDir:      "dist",
		ReloadInterval: 5 * time.Second,
	}
}

// Load reads the config from dataDir. A missing file yields Default().
func Load(dataDir string) (Config, error) {
	cfgPath := filepath.Join(dataDir, FileName)

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.DataDir = dataDir
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// Keys missing from the file keep their defaults. An explicit
	// reload_interval of 0s disables reloading.
	def := Default()
	cfg := def
	cfg.DataDir = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", cfgPath, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.DefinitionsDir == "" {
		cfg.DefinitionsDir = def.DefinitionsDir
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = def.ExportDir
	}
	if cfg.ReloadInterval < 0 {
		return Config{}, fmt.Errorf("reload_interval must not be negative")
	}

	return cfg, nil
}

// Resolve returns p relative to the data directory unless it is absolute.
func (c Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// Save writes cfg into its data directory, replacing any existing file.
func Save(cfg Config) error {
	cfgPath := filepath.Join(cfg.DataDir, FileName)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := cfgPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, cfgPath)
}
