package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configEnv = "GOCALC_CONFIG"

type config struct {
	LogLevel    string `yaml:"log_level"`
	ShowTree    bool   `yaml:"show_tree"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Workers     int    `yaml:"workers"`
}

func defaultConfig() *config {
	cfg := &config{
		LogLevel: "warn",
		Prompt:   "> ",
		Workers:  1,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".gocalc_history")
	}
	return cfg
}

// configPath returns $GOCALC_CONFIG, or ~/.gocalc.yaml.
func configPath() string {
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gocalc.yaml")
}

// loadConfig overlays the file at path on the defaults. A missing file is
// not an error.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}
