package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".rpdc.yaml"
const defaultHistoryName = ".rpdc_history"

type config struct {
	LogLevel    string `yaml:"log_level"`
	Color       *bool  `yaml:"color"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

func defaultConfig() *config {
	color := true
	cfg := &config{
		LogLevel: "warn",
		Color:    &color,
		Prompt:   "> ",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, defaultHistoryName)
	}
	return cfg
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultConfigName)
}

// loadConfig reads path over the defaults. A missing file is only an
// error when the user asked for it explicitly.
func loadConfig(path string, explicit bool) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	var raw config
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.merge(&raw)
	return cfg, nil
}

func (c *config) merge(other *config) {
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Color != nil {
		c.Color = other.Color
	}
	if other.Prompt != "" {
		c.Prompt = other.Prompt
	}
	if other.HistoryFile != "" {
		c.HistoryFile = expandHome(other.HistoryFile)
	}
}

func (c *config) colorEnabled() bool {
	return c.Color == nil || *c.Color
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
