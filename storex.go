package storex

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Reducer computes the next state from the current state and an action.
// It must be pure: no I/O, no mutation of its inputs, and no calls back into
// the Store it is bound to.
type Reducer[S, A any] func(state S, action A) S

// Listener is called with the new state after every dispatch.
type Listener[S any] func(state S)

type listenerEntry[S any] struct {
	id uint64
	fn Listener[S]
}

// Store holds a single state value that is only ever replaced by the result
// of its reducer. Listeners are notified synchronously, in subscription
// order, after every dispatch.
//
// The zero Store is not usable; construct one with New.
type Store[S, A any] struct {
	mu        sync.Mutex
	reducer   Reducer[S, A]
	state     S
	listeners []listenerEntry[S]
	nextID    uint64
	seq       uint64

	// Set once by options, read-only afterwards.
	publishers []Publisher[S, A]
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a Store bound to reducer with the given initial state.
// No validation happens here: a nil reducer is reported by Dispatch.
func New[S, A any](reducer Reducer[S, A], initial S, opts ...Option[S, A]) *Store[S, A] {
	s := &Store[S, A]{
		reducer: reducer,
		state:   initial,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetState returns the current state. It never notifies listeners.
func (s *Store[S, A]) GetState() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Seq returns the number of dispatches whose reducer has run. It is bumped
// before publishers and listeners are called.
func (s *Store[S, A]) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Listeners returns the number of live subscriptions.
func (s *Store[S, A]) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Dispatch applies action through the reducer, replaces the state with the
// result and notifies every listener registered when the dispatch started.
//
// The state is replaced unconditionally, even when the reducer returns an
// equal value. If the reducer is nil, Dispatch returns an error wrapping
// ErrInvalidReducer and leaves the state untouched. If the reducer panics the
// state is left untouched and the panic reaches the caller.
//
// A panicking listener does not stop the others. Each recovered panic is
// returned as a *ListenerError, joined with errors.Join.
func (s *Store[S, A]) Dispatch(action A) error {
	t, listeners, err := s.reduce(action)
	if err != nil {
		return err
	}

	s.logger.Debug("dispatch",
		"seq", t.Seq,
		"listeners", len(listeners),
	)

	s.publish(t)
	return s.notify(t.Next, listeners)
}

// Subscribe registers listener and returns the handle that removes it.
// Registering the same function twice yields two independent subscriptions.
// A nil listener is registered but never called.
func (s *Store[S, A]) Subscribe(listener Listener[S]) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry[S]{id: id, fn: listener})

	return &Subscription{id: id, release: s.unsubscribe}
}

//
// Helper Functions (internal API)
//

// reduce runs the reducer and swaps the state under the lock, returning the
// transition and a snapshot of the listeners to notify.
func (s *Store[S, A]) reduce(action A) (Transition[S, A], []listenerEntry[S], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reducer == nil {
		return Transition[S, A]{}, nil, fmt.Errorf("dispatch: %w", ErrInvalidReducer)
	}

	prev := s.state
	next := s.reducer(prev, action)

	s.state = next
	s.seq++

	t := Transition[S, A]{
		Seq:    s.seq,
		Action: action,
		Prev:   prev,
		Next:   next,
		At:     s.now(),
	}
	return t, slices.Clone(s.listeners), nil
}

func (s *Store[S, A]) publish(t Transition[S, A]) {
	for _, p := range s.publishers {
		if err := p.Publish(t); err != nil {
			s.logger.Warn("publish transition",
				"seq", t.Seq,
				"error", err,
			)
		}
	}
}

func (s *Store[S, A]) notify(state S, listeners []listenerEntry[S]) error {
	var errs []error
	for _, l := range listeners {
		if err := s.call(l, state); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// call invokes a single listener, turning a panic into a *ListenerError.
func (s *Store[S, A]) call(l listenerEntry[S], state S) (err error) {
	if l.fn == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("listener panicked",
				"subscription", l.id,
				"panic", r,
			)
			err = &ListenerError{SubscriptionID: l.id, Value: r}
		}
	}()

	l.fn(state)
	return nil
}

func (s *Store[S, A]) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.listeners, func(l listenerEntry[S]) bool {
		return l.id == id
	})
	if i < 0 {
		return
	}
	s.listeners = slices.Delete(s.listeners, i, i+1)
}
