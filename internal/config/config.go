package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds gate-process settings that are not part of any project's
// security profile: where to write decision sinks and whether strict
// mode is on by default. Per-call env toggles still win over the file.
type Config struct {
	AuditLogPath  string `yaml:"audit_log_path"`
	HistoryPath   string `yaml:"history_path"`
	StrictDefault bool   `yaml:"strict_default"`
}

// Default returns the built-in configuration: sinks under
// ~/.auto-claude, strict mode off.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Config{}
	}
	return &Config{
		AuditLogPath: filepath.Join(home, ".auto-claude", "gate-audit.jsonl"),
		HistoryPath:  filepath.Join(home, ".auto-claude", "gate-history.db"),
	}
}

// Load reads the gate config. Empty path falls back to
// ~/.auto-claude/gate.yaml. Missing file returns defaults. Invalid
// YAML returns an error.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".auto-claude", "gate.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read gate config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse gate config: %w", err)
	}
	return cfg, nil
}
