// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ConfigError reports configuration that cannot succeed on retry.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseEndpoint checks a host:port meter address and returns it unchanged.
// The host may be an IP address or a hostname; the port must be 1-65535.
func ParseEndpoint(endpoint string) (string, error) {
	if endpoint == "" {
		return "", &ConfigError{Field: "meter.endpoint", Value: endpoint, Err: errors.New("endpoint required")}
	}

	host, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		return "", &ConfigError{Field: "meter.endpoint", Value: endpoint, Err: err}
	}
	if host == "" {
		return "", &ConfigError{Field: "meter.endpoint", Value: endpoint, Err: errors.New("missing host")}
	}

	n, err := strconv.ParseUint(port, 10, 16)
	if err != nil || n == 0 {
		return "", &ConfigError{Field: "meter.endpoint", Value: endpoint, Err: fmt.Errorf("invalid port %q", port)}
	}

	return endpoint, nil
}

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	if _, err := ParseEndpoint(cfg.Meter.Endpoint); err != nil {
		return err
	}

	if cfg.Meter.TimeoutMs < 0 {
		return &ConfigError{
			Field: "meter.timeout_ms",
			Value: strconv.Itoa(cfg.Meter.TimeoutMs),
			Err:   errors.New("must be >= 0"),
		}
	}
	if cfg.Poll.IntervalMs <= 0 {
		return &ConfigError{
			Field: "poll.interval_ms",
			Value: strconv.Itoa(cfg.Poll.IntervalMs),
			Err:   errors.New("must be > 0"),
		}
	}
	if cfg.Poll.BackoffMs <= 0 {
		return &ConfigError{
			Field: "poll.backoff_ms",
			Value: strconv.Itoa(cfg.Poll.BackoffMs),
			Err:   errors.New("must be > 0"),
		}
	}

	if !cfg.HTTP.Disabled {
		if _, _, err := net.SplitHostPort(cfg.HTTP.Listen); err != nil {
			return &ConfigError{Field: "http.listen", Value: cfg.HTTP.Listen, Err: err}
		}
	}

	return nil
}
