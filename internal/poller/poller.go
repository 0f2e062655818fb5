// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
)

// Client abstracts the register reads the poller needs.
// Any error is connection-fatal: the caller drops the client.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error)
	Close() error
}

// Dialer opens one stateful session to endpoint addressed to unitID.
// ONE attempt per call: no retries, no loops.
type Dialer func(ctx context.Context, endpoint string, unitID uint8) (Client, error)

// Poller performs poll cycles over one connected client.
type Poller struct {
	client Client
}

// New wraps a connected client.
func New(client Client) (*Poller, error) {
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	return &Poller{client: client}, nil
}

// PollOnce reads watts, volts and frequency, in that order.
// All-or-nothing: any failure aborts the cycle with a *TransportError.
func (p *Poller) PollOnce() (Sample, error) {
	var s Sample
	var err error

	if s.Watts, err = p.readF32(RegWatts); err != nil {
		return Sample{}, err
	}
	if s.Volts, err = p.readF32(RegVolts); err != nil {
		return Sample{}, err
	}
	if s.FrequencyHz, err = p.readF32(RegFrequency); err != nil {
		return Sample{}, err
	}
	return s, nil
}

func (p *Poller) readF32(addr uint16) (float32, error) {
	regs, err := p.client.ReadHoldingRegisters(addr, RegsPerValue)
	if err != nil {
		return 0, &TransportError{Address: addr, Err: err}
	}
	v, err := DecodeF32(regs)
	if err != nil {
		return 0, &TransportError{Address: addr, Err: err}
	}
	return v, nil
}
