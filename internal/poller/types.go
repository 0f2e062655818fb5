// internal/poller/types.go
package poller

import "time"

// Fixed register map of the meter. Each value spans two holding registers
// holding a big-endian IEEE-754 float.
const (
	RegWatts     uint16 = 0x0383
	RegVolts     uint16 = 0x03ED
	RegFrequency uint16 = 0x0401

	// RegsPerValue is the register count of one float32 reading.
	RegsPerValue uint16 = 2
)

// Loop pacing defaults.
const (
	DefaultInterval = 1 * time.Second
	DefaultBackoff  = 2 * time.Second
	DefaultUnitID   = 1
)

// Sample is the raw triple produced by one successful poll cycle.
type Sample struct {
	Watts       float32
	Volts       float32
	FrequencyHz float32
}

// State is the acquisition loop state.
type State uint8

const (
	StateDisconnected State = iota
	StateConnecting
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StatePolling:
		return "polling"
	default:
		return "unknown"
	}
}
