// internal/status/snapshot.go
package status

import "time"

// Snapshot is a point-in-time copy of the link status.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16    `json:"health"`
	HealthName     string    `json:"health_name"`
	LastErrorCode  uint16    `json:"last_error_code"`
	LastError      string    `json:"last_error,omitempty"`
	SecondsInError uint64    `json:"seconds_in_error"`
	LastSampleAt   time.Time `json:"last_sample_at"`
}
