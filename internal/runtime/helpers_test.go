package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drblury/winloop/internal/runtime/backend"
	"github.com/drblury/winloop/internal/runtime/backend/headless"
	configpkg "github.com/drblury/winloop/internal/runtime/config"
	"github.com/drblury/winloop/internal/runtime/events"
	"github.com/drblury/winloop/internal/runtime/input"
	loggingpkg "github.com/drblury/winloop/internal/runtime/logging"
	"github.com/drblury/winloop/internal/runtime/window"
)

type loopFixture struct {
	loop    *EventLoop
	backend *headless.Backend
	seen    []events.Event
}

func newLoopFixture(t *testing.T, opts headless.Options, mutate func(*configpkg.Config)) *loopFixture {
	t.Helper()
	if opts.MaxTicks == 0 {
		opts.MaxTicks = 100
	}
	conf := configpkg.Default()
	if mutate != nil {
		mutate(conf)
	}
	b := headless.New(opts)
	loop, err := NewEventLoop(conf, loggingpkg.NewNopLogger(), Dependencies{Backend: b})
	require.NoError(t, err)
	return &loopFixture{loop: loop, backend: b}
}

// run records every dispatched event before handing it to handler.
func (f *loopFixture) run(handler Handler) error {
	return f.loop.Run(context.Background(), func(ev events.Event, ctx *WindowContext) {
		f.seen = append(f.seen, ev)
		if handler != nil {
			handler(ev, ctx)
		}
	})
}

func (f *loopFixture) types() []string {
	out := make([]string, 0, len(f.seen))
	for _, ev := range f.seen {
		out = append(out, events.TypeName(ev))
	}
	return out
}

func countOf[T any](evs []events.Event) int {
	n := 0
	for _, ev := range evs {
		if events.Is[T](ev) {
			n++
		}
	}
	return n
}

type customEvent struct {
	N int
}

// scriptedBackend runs a fixed callback script, then returns err.
type scriptedBackend struct {
	script  func(cb backend.Callbacks)
	err     error
	applied []window.Request
}

func (b *scriptedBackend) Run(_ context.Context, cb backend.Callbacks) error {
	if b.script != nil {
		b.script(cb)
	}
	return b.err
}

func (b *scriptedBackend) Apply(req window.Request) error {
	b.applied = append(b.applied, req)
	return nil
}

var _ backend.Backend = (*scriptedBackend)(nil)

var keyA = input.Keyboard{State: input.Pressed, Scancode: 30, KeyCode: input.KeyA}
