// internal/status/tracker.go
package status

import (
	"sync"
	"time"
)

// Tracker records link health as seen by the acquisition loop.
// Writes come from one goroutine; Snapshot is safe from any goroutine.
type Tracker struct {
	mu sync.Mutex

	health       uint16
	lastCode     uint16
	lastErr      string
	errorSince   time.Time
	lastSampleAt time.Time

	now func() time.Time
}

// NewTracker returns a tracker in HealthUnknown.
func NewTracker() *Tracker {
	return &Tracker{health: HealthUnknown, now: time.Now}
}

// MarkOK records a successful poll cycle completed at t.
func (t *Tracker) MarkOK(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.health = HealthOK
	t.lastCode = 0
	t.lastErr = ""
	t.errorSince = time.Time{}
	t.lastSampleAt = at
}

// MarkError records a connect or poll failure observed at t.
// The error clock starts at the first failure of a run and is kept across
// consecutive failures.
func (t *Tracker) MarkError(at time.Time, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.health != HealthError {
		t.errorSince = at
	}
	t.health = HealthError
	t.lastCode = ErrorCode(err)
	if err != nil {
		t.lastErr = err.Error()
	}
}

// Snapshot returns the current status.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		Health:        t.health,
		HealthName:    HealthName(t.health),
		LastErrorCode: t.lastCode,
		LastError:     t.lastErr,
		LastSampleAt:  t.lastSampleAt,
	}
	if t.health == HealthError && !t.errorSince.IsZero() {
		if d := t.now().Sub(t.errorSince); d > 0 {
			s.SecondsInError = uint64(d / time.Second)
		}
	}
	return s
}
