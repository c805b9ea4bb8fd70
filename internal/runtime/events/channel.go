package events

import (
	"sync"

	"github.com/eapache/queue"

	errspkg "github.com/drblury/winloop/internal/runtime/errors"
)

// channel is the shared state behind a Sender/Receiver pair.
type channel struct {
	mu      sync.Mutex
	items   *queue.Queue
	dropped bool
}

// Sender pushes events onto a Channel. It is safe for concurrent use, and
// copying a Sender clones it.
type Sender struct {
	ch *channel
}

// Receiver pops events off a Channel. There is exactly one Receiver per
// channel and it must not be shared between goroutines.
type Receiver struct {
	ch *channel
}

// NewChannel creates an unbounded multi-producer, single-consumer event
// queue.
func NewChannel() (Sender, *Receiver) {
	ch := &channel{items: queue.New()}
	return Sender{ch: ch}, &Receiver{ch: ch}
}

// Send enqueues ev without blocking. It fails with ErrReceiverDropped once
// the receiver has been closed.
func (s Sender) Send(ev Event) error {
	if ev == nil {
		return errspkg.ErrEventRequired
	}
	if s.ch == nil {
		return errspkg.ErrReceiverDropped
	}

	s.ch.mu.Lock()
	defer s.ch.mu.Unlock()

	if s.ch.dropped {
		return errspkg.ErrReceiverDropped
	}
	s.ch.items.Add(ev)
	return nil
}

// Clone returns another Sender for the same channel.
func (s Sender) Clone() Sender {
	return Sender{ch: s.ch}
}

// Connected reports whether the receiver is still accepting events.
func (s Sender) Connected() bool {
	if s.ch == nil {
		return false
	}
	s.ch.mu.Lock()
	defer s.ch.mu.Unlock()
	return !s.ch.dropped
}

// Next removes and returns the oldest queued event. It never blocks; an
// empty queue reports false immediately.
func (r *Receiver) Next() (Event, bool) {
	r.ch.mu.Lock()
	defer r.ch.mu.Unlock()

	if r.ch.dropped || r.ch.items.Length() == 0 {
		return nil, false
	}
	return r.ch.items.Remove(), true
}

// Len returns the number of queued events.
func (r *Receiver) Len() int {
	r.ch.mu.Lock()
	defer r.ch.mu.Unlock()
	return r.ch.items.Length()
}

// Close drops the receiver. Queued events are discarded and every later Send
// reports ErrReceiverDropped. Close is idempotent.
func (r *Receiver) Close() {
	r.ch.mu.Lock()
	defer r.ch.mu.Unlock()

	if r.ch.dropped {
		return
	}
	r.ch.dropped = true
	r.ch.items = queue.New()
}
