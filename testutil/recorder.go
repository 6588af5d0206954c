// Package testutil provides helpers shared by the storex test suites.
package testutil

import "sync"

// Recorder is a listener that remembers every state it is called with.
// It is safe for concurrent use.
type Recorder[S any] struct {
	mu     sync.Mutex
	states []S
}

// NewRecorder creates an empty Recorder.
func NewRecorder[S any]() *Recorder[S] {
	return &Recorder[S]{}
}

// Listen records state. Pass the method value to Store.Subscribe.
func (r *Recorder[S]) Listen(state S) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

// States returns a copy of the recorded states in call order.
func (r *Recorder[S]) States() []S {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]S, len(r.states))
	copy(out, r.states)
	return out
}

// Len returns the number of recorded calls.
func (r *Recorder[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// Last returns the most recent state and whether there was one.
func (r *Recorder[S]) Last() (S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero S
	if len(r.states) == 0 {
		return zero, false
	}
	return r.states[len(r.states)-1], true
}

// Reset forgets all recorded states.
func (r *Recorder[S]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = nil
}
