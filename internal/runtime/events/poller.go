package events

// Poller is a pull-style event loop over a Channel.
//
// Unlike a plain Receiver, a Poller keeps producing events while it runs:
// when the queue is empty it yields EventsCleared instead of nothing. The
// first Quit it yields latches it shut; every call after that reports false.
type Poller struct {
	sender   Sender
	receiver *Receiver
	exited   bool
}

// NewPoller creates a Poller with its own channel.
func NewPoller() *Poller {
	sender, receiver := NewChannel()
	return &Poller{sender: sender, receiver: receiver}
}

// Sender returns a Sender feeding this Poller.
func (p *Poller) Sender() Sender {
	return p.sender.Clone()
}

// NextEvent returns the next event without blocking.
func (p *Poller) NextEvent() (Event, bool) {
	if p.exited {
		return nil, false
	}

	ev, ok := p.receiver.Next()
	if !ok {
		return EventsCleared{}, true
	}
	if Is[Quit](ev) {
		p.exited = true
		p.receiver.Close()
	}
	return ev, true
}

// Exited reports whether the Poller has yielded its Quit.
func (p *Poller) Exited() bool {
	return p.exited
}
