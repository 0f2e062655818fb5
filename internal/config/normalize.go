// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultUnitID     uint8 = 1
	DefaultTimeoutMs        = 5000
	DefaultIntervalMs       = 1000
	DefaultBackoffMs        = 2000
	DefaultListen           = "0.0.0.0:8081"
	DefaultIndexFile        = "./sharkmon.html"
)

// Normalize fills unset fields with defaults.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Meter.UnitID == 0 {
		cfg.Meter.UnitID = DefaultUnitID
	}
	if cfg.Meter.TimeoutMs == 0 {
		cfg.Meter.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = DefaultIntervalMs
	}
	if cfg.Poll.BackoffMs == 0 {
		cfg.Poll.BackoffMs = DefaultBackoffMs
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = DefaultListen
	}
	if cfg.HTTP.IndexFile == "" {
		cfg.HTTP.IndexFile = DefaultIndexFile
	}

	// Without the web server stdout is the only diagnostic channel.
	if cfg.HTTP.Disabled {
		cfg.Verbose = true
	}
}
