// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Meter   MeterConfig `yaml:"meter"`
	Poll    PollConfig  `yaml:"poll"`
	HTTP    HTTPConfig  `yaml:"http"`
	Verbose bool        `yaml:"verbose"`
}

// ---- METER ----

type MeterConfig struct {
	Endpoint  string `yaml:"endpoint"` // host:port
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

func (m MeterConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
	BackoffMs  int `yaml:"backoff_ms"`
}

func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

func (p PollConfig) Backoff() time.Duration {
	return time.Duration(p.BackoffMs) * time.Millisecond
}

// ---- HTTP ----

type HTTPConfig struct {
	Listen    string `yaml:"listen"`
	IndexFile string `yaml:"index_file"`
	Disabled  bool   `yaml:"disabled"`
}

// Load reads a YAML config file. Missing fields stay zero; call Normalize.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
