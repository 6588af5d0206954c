// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"github.com/comalice/storex"
	"github.com/comalice/storex/tally"
)

// Actions cycled through by the dispatch benchmarks.
var Actions = []storex.Action{
	storex.NewAction(tally.Add, nil),
	storex.NewAction(tally.Add, nil),
	storex.NewAction(tally.Subtract, nil),
	storex.NewAction("UNKNOWN", nil),
	storex.NewAction(tally.Reset, nil),
}

// NewTallyStore creates a tally store with n no-op listeners.
func NewTallyStore(n int, opts ...tally.Option) *tally.Store {
	s := tally.New(opts...)
	for i := 0; i < n; i++ {
		s.Subscribe(func(int) {})
	}
	return s
}
