// internal/config/validate_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// helper to build a normalized config quickly
func valid(endpoint string) *Config {
	cfg := &Config{Meter: MeterConfig{Endpoint: endpoint}}
	Normalize(cfg)
	return cfg
}

// ---- tests ----

func TestParseEndpoint_Accepts(t *testing.T) {
	for _, ep := range []string{
		"192.168.1.100:502",
		"meter.local:502",
		"[::1]:5020",
	} {
		got, err := ParseEndpoint(ep)
		if err != nil {
			t.Fatalf("ParseEndpoint(%q) err=%v", ep, err)
		}
		if got != ep {
			t.Fatalf("ParseEndpoint(%q) = %q", ep, got)
		}
	}
}

func TestParseEndpoint_Rejects(t *testing.T) {
	for _, ep := range []string{
		"",
		"192.168.1.100",
		":502",
		"meter:0",
		"meter:70000",
		"meter:modbus",
	} {
		_, err := ParseEndpoint(ep)
		if err == nil {
			t.Fatalf("ParseEndpoint(%q): expected error, got nil", ep)
		}
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("ParseEndpoint(%q): expected *ConfigError, got %T", ep, err)
		}
		if ce.Field != "meter.endpoint" {
			t.Fatalf("unexpected field %q", ce.Field)
		}
	}
}

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(valid("10.0.0.5:502")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BadEndpoint(t *testing.T) {
	if err := Validate(valid("not-an-endpoint")); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}
}

func TestValidate_NonPositiveInterval(t *testing.T) {
	cfg := valid("10.0.0.5:502")
	cfg.Poll.IntervalMs = -1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected interval error, got nil")
	}
}

func TestValidate_ListenIgnoredWhenDisabled(t *testing.T) {
	cfg := valid("10.0.0.5:502")
	cfg.HTTP.Listen = "garbage"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected listen error, got nil")
	}

	cfg.HTTP.Disabled = true
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error with web disabled: %v", err)
	}
}

func TestNormalize_DisabledWebImpliesVerbose(t *testing.T) {
	cfg := &Config{HTTP: HTTPConfig{Disabled: true}}
	Normalize(cfg)

	if !cfg.Verbose {
		t.Fatalf("expected verbose when web is disabled")
	}
	if cfg.Meter.UnitID != DefaultUnitID {
		t.Fatalf("unit id: got=%d want=%d", cfg.Meter.UnitID, DefaultUnitID)
	}
	if cfg.Poll.Interval().Seconds() != 1 || cfg.Poll.Backoff().Seconds() != 2 {
		t.Fatalf("unexpected pacing defaults: %v %v", cfg.Poll.Interval(), cfg.Poll.Backoff())
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sharkmon.yaml")
	data := []byte(`
meter:
  endpoint: 192.168.1.100:502
  timeout_ms: 750
poll:
  interval_ms: 500
http:
  disabled: true
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	Normalize(cfg)

	if cfg.Meter.Endpoint != "192.168.1.100:502" {
		t.Fatalf("endpoint: got=%q", cfg.Meter.Endpoint)
	}
	if cfg.Meter.TimeoutMs != 750 || cfg.Poll.IntervalMs != 500 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if cfg.Poll.BackoffMs != DefaultBackoffMs {
		t.Fatalf("backoff default not applied: %d", cfg.Poll.BackoffMs)
	}
	if !cfg.Verbose {
		t.Fatalf("expected verbose with web disabled")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
