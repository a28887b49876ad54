// Package admission implements a single-flight gate over music generation
// requests: at most one outstanding generation per client key. Generation
// calls are slow and metered by external credits, so a second request from
// the same client is rejected outright instead of queued or merged.
package admission

import "sync"

// Gate tracks which client keys currently have a generation request in
// flight. State is process-local on purpose: a restart clearing the flags
// only ever makes the gate more permissive, never stuck.
type Gate struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewGate() *Gate {
	return &Gate{
		inFlight: make(map[string]bool),
	}
}

// TryAdmit marks key as in flight and returns true, or returns false if a
// request for key is already outstanding. Check and set happen under one
// lock so concurrent callers can never both be admitted.
func (g *Gate) TryAdmit(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight[key] {
		return false
	}
	g.inFlight[key] = true
	return true
}

// Release clears the in-flight flag for key. Callers must release on every
// exit path (defer), otherwise the client stays wedged out until restart.
func (g *Gate) Release(key string) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
}

// InFlight reports whether key currently has an outstanding request.
func (g *Gate) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[key]
}
