// internal/poller/runner.go
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tamzrod/sharkmon/internal/config"
	"github.com/tamzrod/sharkmon/internal/reading"
	"github.com/tamzrod/sharkmon/internal/status"
)

// RunnerConfig is the minimal runtime config the acquisition loop needs.
type RunnerConfig struct {
	Endpoint string
	UnitID   uint8
	Interval time.Duration
	Backoff  time.Duration
}

// Runner owns the meter connection and is the only writer of the gateway.
//
//	Disconnected -> Connecting -> Polling -> (fault) -> Disconnected
//
// It retries forever with a fixed backoff until ctx is cancelled.
type Runner struct {
	cfg     RunnerConfig
	dial    Dialer
	gateway *reading.Gateway

	tracker  *status.Tracker
	logger   *slog.Logger
	clock    Clock
	onSample func(reading.Reading)

	state atomic.Uint32
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracker records link health into t.
func WithTracker(t *status.Tracker) Option {
	return func(r *Runner) { r.tracker = t }
}

// WithLogger sets the runner logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithOnSample calls fn with a snapshot after every successful cycle.
// fn runs on the loop goroutine, outside the gateway lock.
func WithOnSample(fn func(reading.Reading)) Option {
	return func(r *Runner) { r.onSample = fn }
}

// NewRunner creates a runner with immutable config.
func NewRunner(cfg RunnerConfig, dial Dialer, gw *reading.Gateway, opts ...Option) (*Runner, error) {
	if dial == nil {
		return nil, errors.New("poller: dialer required")
	}
	if gw == nil {
		return nil, errors.New("poller: gateway required")
	}
	if cfg.UnitID == 0 {
		cfg.UnitID = DefaultUnitID
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.Backoff <= 0 {
		return nil, errors.New("poller: backoff must be > 0")
	}

	r := &Runner{
		cfg:     cfg,
		dial:    dial,
		gateway: gw,
		tracker: status.NewTracker(),
		logger:  slog.Default(),
		clock:   realClock{},
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// State returns the current loop state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run drives the loop until ctx is cancelled.
// It returns a *config.ConfigError if the endpoint cannot be parsed and nil
// on cancellation. All connect and read failures are absorbed.
func (r *Runner) Run(ctx context.Context) error {
	endpoint, err := config.ParseEndpoint(r.cfg.Endpoint)
	if err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			r.setState(StateDisconnected)
			return nil
		}

		err := r.session(ctx, endpoint)
		r.setState(StateDisconnected)
		if err == nil {
			return nil
		}

		r.fault(endpoint, err)

		if !r.sleep(ctx, r.cfg.Backoff) {
			return nil
		}
	}
}

// session connects once and polls until a failure or cancellation.
// It returns nil only when ctx is done.
func (r *Runner) session(ctx context.Context, endpoint string) error {
	r.setState(StateConnecting)

	client, err := r.dial(ctx, endpoint, r.cfg.UnitID)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		var ce *ConnectError
		if errors.As(err, &ce) {
			return err
		}
		return &ConnectError{Endpoint: endpoint, Err: err}
	}
	defer client.Close()

	p, err := New(client)
	if err != nil {
		return &ConnectError{Endpoint: endpoint, Err: err}
	}

	r.logger.Info("meter connected", "endpoint", endpoint, "unit_id", r.cfg.UnitID)
	r.setState(StatePolling)

	// Tick n starts at anchor + n*interval.
	anchor := r.clock.Now()
	var n int64

	for {
		if ctx.Err() != nil {
			return nil
		}

		s, err := p.PollOnce()
		if err != nil {
			return err
		}

		r.gateway.Update(s.Watts, s.Volts, s.FrequencyHz)
		r.tracker.MarkOK(r.clock.Now())

		if r.onSample != nil {
			r.onSample(r.gateway.Snapshot())
		}

		n++
		next := anchor.Add(time.Duration(n) * r.cfg.Interval)
		now := r.clock.Now()
		if now.After(next) {
			skipped := n
			n = int64(now.Sub(anchor)/r.cfg.Interval) + 1
			next = anchor.Add(time.Duration(n) * r.cfg.Interval)
			r.logger.Debug("poll cycle overran interval", "skipped_ticks", n-skipped)
		}

		if !r.sleep(ctx, next.Sub(now)) {
			return nil
		}
	}
}

// fault resets the shared reading and records the failure.
func (r *Runner) fault(endpoint string, err error) {
	r.logger.Warn("meter link fault, sleeping and retrying",
		"endpoint", endpoint,
		"backoff", r.cfg.Backoff,
		"error", err)

	r.gateway.Reset()
	r.tracker.MarkError(r.clock.Now(), err)
}

// sleep waits d and reports whether the loop should continue.
func (r *Runner) sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-r.clock.After(d):
		return true
	}
}

func (r *Runner) setState(s State) {
	if old := State(r.state.Swap(uint32(s))); old != s {
		r.logger.Debug("acquisition state", "from", old.String(), "to", s.String())
	}
}
