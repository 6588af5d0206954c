package sink

import (
	"sync/atomic"

	"github.com/comalice/storex"
)

// ChannelPublisher forwards transitions to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher[S, A any] struct {
	ch      chan<- storex.Transition[S, A]
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher[S, A any](ch chan<- storex.Transition[S, A]) *ChannelPublisher[S, A] {
	return &ChannelPublisher[S, A]{ch: ch}
}

func (p *ChannelPublisher[S, A]) Publish(t storex.Transition[S, A]) error {
	select {
	case p.ch <- t:
	default:
		p.dropped.Add(1)
	}
	return nil
}

// Dropped returns how many transitions were discarded because the channel
// was full.
func (p *ChannelPublisher[S, A]) Dropped() uint64 {
	return p.dropped.Load()
}

// Close closes the output channel. Publishing after Close panics.
func (p *ChannelPublisher[S, A]) Close() error {
	close(p.ch)
	return nil
}
