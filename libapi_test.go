package winloop

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLoopThroughExports(t *testing.T) {
	backend := NewHeadlessBackend(HeadlessOptions{MaxTicks: 20})
	loop, err := NewEventLoop(DefaultConfig(), NewNopLogger(), Dependencies{Backend: backend})
	require.NoError(t, err)

	var (
		windows []*WindowHandle
		closed  int
	)
	err = loop.Run(context.Background(), func(ev Event, ctx *WindowContext) {
		switch ev := ev.(type) {
		case Started:
			for _, title := range []string{"A", "B"} {
				h, err := ctx.CreateWindow(DefaultWindowSettings().WithTitle(title))
				require.NoError(t, err)
				windows = append(windows, h)
			}
		case WindowReady:
			if ev.ID == windows[0].ID() {
				assert.Equal(t, 2, ctx.WindowCount())
				windows[0].Release()
			}
		case WindowClosed:
			closed++
			assert.Equal(t, windows[0].ID(), ev.ID)
			assert.Equal(t, 1, ctx.WindowCount())
			ctx.Exit()
		}
	})
	require.NoError(t, err)
	defer windows[1].Release()

	assert.Equal(t, 1, closed)
	assert.Equal(t, LoopExited, loop.Phase())
	assert.ErrorIs(t, loop.Run(context.Background(), func(Event, *WindowContext) {}), ErrLoopAlreadyRun)
}

func TestPollerExports(t *testing.T) {
	p := NewPoller()
	sender := p.Sender()
	require.NoError(t, sender.Send("hello"))
	require.NoError(t, sender.Send(Quit{}))

	ev, ok := p.NextEvent()
	require.True(t, ok)
	s, ok := As[string](ev)
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	ev, ok = p.NextEvent()
	require.True(t, ok)
	assert.True(t, Is[Quit](ev))

	_, ok = p.NextEvent()
	assert.False(t, ok)
	assert.ErrorIs(t, sender.Send("late"), ErrReceiverDropped)
}

func TestConfigExports(t *testing.T) {
	conf, err := ParseConfig(strings.NewReader("metrics_namespace: game\n"))
	require.NoError(t, err)
	assert.Equal(t, "game", conf.MetricsNamespace)
	assert.NoError(t, ValidateConfig(conf))
	assert.Error(t, ValidateConfig(nil))
}

func TestLoggerExports(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	logger.Info("boot", LogFields{"component": "test"})
	assert.Contains(t, buf.String(), "component=test")
}

func TestErrorExports(t *testing.T) {
	err := NewUnsupportedError(errors.New("no fullscreen"))
	assert.ErrorIs(t, err, ErrWindowCreationFailed)

	var wce *WindowCreationError
	require.ErrorAs(t, err, &wce)
	assert.Equal(t, KindUnsupported, wce.Kind)
}

func TestEncodeEventExport(t *testing.T) {
	payload, err := EncodeEvent(WindowResized{Size: WindowSize{Width: 2, Height: 3}})
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"type":"window.Resized"`)
	assert.NotEmpty(t, CreateULID())
}

func TestHooksAndMiddlewareExports(t *testing.T) {
	var ticks int
	kept := 0
	loop, err := NewEventLoop(DefaultConfig(), NewNopLogger(), Dependencies{
		Backend: NewHeadlessBackend(HeadlessOptions{MaxTicks: 10}),
		Hooks:   LoggingHooks(NewNopLogger()).Merge(LoopHooks{OnTick: func(TickContext) { ticks++ }}),
		Middlewares: []Middleware{
			RecovererMiddleware(NewNopLogger()),
			FilterMiddleware(func(ev Event) bool { return Is[EventsCleared](ev) }),
		},
	})
	require.NoError(t, err)

	require.NoError(t, loop.Run(context.Background(), func(ev Event, ctx *WindowContext) {
		kept++
		if Is[EventsCleared](ev) {
			ctx.Exit()
		}
	}))
	assert.Equal(t, 2, kept, "EventsCleared and Exited pass the filter")
	assert.Equal(t, 2, ticks)
}
