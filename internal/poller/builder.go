// internal/poller/builder.go
package poller

import (
	"context"
	"log"
	"log/slog"

	cfg "github.com/tamzrod/sharkmon/internal/config"
	pmodbus "github.com/tamzrod/sharkmon/internal/poller/modbus"
	"github.com/tamzrod/sharkmon/internal/reading"
)

// Build constructs a Runner and wires the Modbus TCP client lifecycle.
// The runner discards the client on transport death and dials again after
// the backoff. c must be normalized and validated.
func Build(c *cfg.Config, gw *reading.Gateway, opts ...Option) (*Runner, error) {
	var wire *log.Logger

	// dialer: ONE attempt per call
	dial := func(ctx context.Context, endpoint string, unitID uint8) (Client, error) {
		cl, err := pmodbus.Dial(ctx, pmodbus.Config{
			Endpoint: endpoint,
			UnitID:   unitID,
			Timeout:  c.Meter.Timeout(),
			Logger:   wire,
		})
		if err != nil {
			return nil, err
		}
		return cl, nil
	}

	r, err := NewRunner(
		RunnerConfig{
			Endpoint: c.Meter.Endpoint,
			UnitID:   c.Meter.UnitID,
			Interval: c.Poll.Interval(),
			Backoff:  c.Poll.Backoff(),
		},
		dial,
		gw,
		opts...,
	)
	if err != nil {
		return nil, err
	}

	// Frame-level tracing only when debug logging is on.
	if r.logger.Enabled(context.Background(), slog.LevelDebug) {
		wire = slog.NewLogLogger(r.logger.Handler(), slog.LevelDebug)
	}

	return r, nil
}
