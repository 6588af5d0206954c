package storex

import "time"

// Transition describes one completed dispatch.
type Transition[S, A any] struct {
	Seq    uint64
	Action A
	Prev   S
	Next   S
	At     time.Time
}

// Publisher observes transitions. Publishers run after the new state is in
// place and before listeners are notified. A publisher error is logged and
// does not fail the dispatch.
type Publisher[S, A any] interface {
	Publish(t Transition[S, A]) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc[S, A any] func(t Transition[S, A]) error

// Publish calls f(t).
func (f PublisherFunc[S, A]) Publish(t Transition[S, A]) error {
	return f(t)
}
