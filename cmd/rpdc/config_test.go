package main

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("Missing default config should not fail: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.Prompt != "> " || !cfg.colorEnabled() {
		t.Errorf("Unexpected defaults %+v", cfg)
	}

	if _, err := loadConfig(missing, true); err == nil {
		t.Errorf("Missing explicit config should fail")
	}

	cfg, err = loadConfig(writeFile(t, "empty.yaml", ""), true)
	if err != nil || cfg.LogLevel != "warn" {
		t.Errorf("Empty config should keep defaults, found %+v %v", cfg, err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", `
log_level: debug
color: false
prompt: "lox> "
history_file: /tmp/rpdc_history
`)
	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.colorEnabled() || cfg.Prompt != "lox> " || cfg.HistoryFile != "/tmp/rpdc_history" {
		t.Errorf("Unexpected config %+v", cfg)
	}

	// Keys that are not set keep their defaults
	cfg, err = loadConfig(writeFile(t, "partial.yaml", "prompt: \"$ \"\n"), true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.LogLevel != "warn" || !cfg.colorEnabled() || cfg.Prompt != "$ " {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	if _, err := loadConfig(writeFile(t, "bad.yaml", "colour: true\n"), true); err == nil {
		t.Errorf("Unknown keys should be rejected")
	}
	if _, err := loadConfig(writeFile(t, "bad.yaml", "color: [\n"), true); err == nil {
		t.Errorf("Malformed YAML should be rejected")
	}
}
