package storex

import "sync"

// Subscription is the handle returned by Store.Subscribe.
//
// Unsubscribe removes exactly the registration that produced the handle.
// The method value sub.Unsubscribe can be passed around as a plain func().
type Subscription struct {
	id      uint64
	once    sync.Once
	release func(id uint64)
}

// ID identifies the registration within its Store. IDs start at 1 and are
// never reused by the same Store.
func (s *Subscription) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Unsubscribe removes the listener. Only the first call has an effect.
// Listeners already scheduled by an in-flight dispatch still run; every later
// dispatch skips the removed listener. A zero Subscription is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.release == nil {
		return
	}
	s.once.Do(func() {
		s.release(s.id)
	})
}
