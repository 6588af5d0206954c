package storex

import (
	"log/slog"
	"time"
)

// Option configures a Store via the functional options pattern.
type Option[S, A any] func(*Store[S, A])

// WithPublisher appends a Publisher. Publishers run in the order given.
func WithPublisher[S, A any](p Publisher[S, A]) Option[S, A] {
	return func(s *Store[S, A]) {
		if p != nil {
			s.publishers = append(s.publishers, p)
		}
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
// The default logger discards everything.
func WithLogger[S, A any](l *slog.Logger) Option[S, A] {
	return func(s *Store[S, A]) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp transitions.
func WithClock[S, A any](now func() time.Time) Option[S, A] {
	return func(s *Store[S, A]) {
		if now != nil {
			s.now = now
		}
	}
}
