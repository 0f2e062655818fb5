// internal/reading/gateway.go
package reading

import "sync"

// Gateway owns the single process-wide Reading.
// One writer (the acquisition loop) mutates it through Apply; any number of
// readers take copies through Snapshot.
type Gateway struct {
	mu sync.Mutex
	r  Reading
}

// NewGateway returns a gateway holding an uninitialized reading.
func NewGateway() *Gateway {
	return &Gateway{}
}

// Snapshot returns a copy of the current reading.
func (g *Gateway) Snapshot() Reading {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r
}

// Apply runs fn on the live reading under the lock.
// fn must not retain the pointer or perform I/O.
func (g *Gateway) Apply(fn func(r *Reading)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.r)
}

// Update applies one sample in a single critical section.
func (g *Gateway) Update(watts, volts, frequencyHz float32) {
	g.Apply(func(r *Reading) { r.Update(watts, volts, frequencyHz) })
}

// Reset zeroes the channels, see Reading.Reset.
func (g *Gateway) Reset() {
	g.Apply(func(r *Reading) { r.Reset() })
}
