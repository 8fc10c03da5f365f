// Package config loads the host keypad settings from YAML.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Display DisplayConfig `yaml:"display"`
	Timing  TimingConfig  `yaml:"timing"`
	Storage StorageConfig `yaml:"storage"`
	Link    LinkConfig    `yaml:"link"`
	Log     LogConfig     `yaml:"log"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Test   bool `yaml:"test"`
	TestMs int  `yaml:"test_ms"`
}

// ---- TIMING ----

// Zero means default for every field.
type TimingConfig struct {
	IgnoreBelowMs      int `yaml:"ignore_below_ms"`
	ConfigHoldMs       int `yaml:"config_hold_ms"`
	MaintenanceHoldMs  int `yaml:"maintenance_hold_ms"`
	SelectionTimeoutMs int `yaml:"selection_timeout_ms"`
	NoticeMs           int `yaml:"notice_ms"`
	DebounceMs         int `yaml:"debounce_ms"`
}

// ---- STORAGE ----

type StorageConfig struct {
	FlashPath string `yaml:"flash_path"`
	FlashSize uint32 `yaml:"flash_size"`
}

// ---- LINK ----

type LinkConfig struct {
	Serial    string `yaml:"serial"`
	Baud      int    `yaml:"baud"`
	Connected bool   `yaml:"connected"`
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config. An empty path yields the zero Config, which
// Normalize turns into defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(b, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg.
func Parse(b []byte, cfg *Config) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}
