package runtime

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/drblury/winloop/internal/runtime/backend"
	configpkg "github.com/drblury/winloop/internal/runtime/config"
	errspkg "github.com/drblury/winloop/internal/runtime/errors"
	"github.com/drblury/winloop/internal/runtime/events"
	"github.com/drblury/winloop/internal/runtime/input"
	loggingpkg "github.com/drblury/winloop/internal/runtime/logging"
	"github.com/drblury/winloop/internal/runtime/observe"
	"github.com/drblury/winloop/internal/runtime/observe/sink"
	"github.com/drblury/winloop/internal/runtime/window"
)

const tracerName = "winloop-event-loop"

// Phase is the lifecycle position of an EventLoop.
type Phase int32

const (
	PhaseCreated Phase = iota
	PhaseStarted
	PhaseRunning
	PhaseExited
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseStarted:
		return "started"
	case PhaseRunning:
		return "running"
	case PhaseExited:
		return "exited"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}

// Exited has no outgoing edges, so a second exit is rejected by the table
// rather than by a flag.
var transitions = map[Phase][]Phase{
	PhaseCreated: {PhaseStarted, PhaseExited},
	PhaseStarted: {PhaseRunning, PhaseExited},
	PhaseRunning: {PhaseExited},
}

func (p Phase) canTransition(to Phase) bool {
	for _, next := range transitions[p] {
		if next == to {
			return true
		}
	}
	return false
}

// Handler receives every event the loop dispatches.
type Handler func(ev events.Event, ctx *WindowContext)

// Dependencies holds the collaborators an EventLoop uses. Only Backend is
// required.
type Dependencies struct {
	Backend backend.Backend
	// Registerer receives the loop metrics when metrics are enabled.
	// Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Tap mirrors dispatched events. When nil and observing is enabled, a
	// Tap is built on Publisher, or on the configured sink when Publisher
	// is nil as well.
	Tap       *observe.Tap
	Publisher message.Publisher
	// Sinks resolves Config.ObserveSink. Defaults to sink.DefaultRegistry.
	Sinks *sink.Registry
	// Hooks observe the loop lifecycle.
	Hooks LoopHooks
	// Middlewares wrap the Handler passed to Run.
	Middlewares []Middleware
}

// EventLoop turns backend callbacks into the event sequence seen by a
// Handler: Started once, then per tick the drained events followed by one
// EventsCleared, and finally Exited once.
type EventLoop struct {
	Conf   *configpkg.Config
	Logger loggingpkg.Logger

	backend  backend.Backend
	metrics  *LoopMetrics
	tap      *observe.Tap
	sink     *sink.Sink
	tracer   trace.Tracer
	sender   events.Sender
	receiver *events.Receiver
	registry *window.Registry
	wctx     *WindowContext

	hooks       LoopHooks
	middlewares []Middleware
	ticks       uint64

	phase     atomic.Int32
	ran       atomic.Bool
	closeOnce sync.Once
	closeErr  error
	ctx       context.Context
	handler   Handler
}

// NewEventLoop constructs an EventLoop. Create windows from the handler once
// Started has been dispatched.
func NewEventLoop(conf *configpkg.Config, log loggingpkg.Logger, deps Dependencies) (*EventLoop, error) {
	if conf == nil {
		return nil, errspkg.ErrConfigRequired
	}
	if log == nil {
		return nil, errspkg.ErrLoggerRequired
	}
	if deps.Backend == nil {
		return nil, errspkg.ErrBackendRequired
	}
	if err := conf.Validate(); err != nil {
		return nil, errspkg.NewConfigValidationError(err)
	}

	sender, receiver := events.NewChannel()
	l := &EventLoop{
		Conf:     conf,
		Logger:   log,
		backend:  deps.Backend,
		tap:      deps.Tap,
		sender:   sender,
		receiver: receiver,
		registry: window.NewRegistry(sender, log),

		hooks:       deps.Hooks,
		middlewares: deps.Middlewares,
	}
	l.wctx = &WindowContext{loop: l}

	if conf.MetricsEnabled {
		l.metrics = NewLoopMetrics(conf.MetricsNamespace, deps.Registerer)
		if err := l.metrics.Register(); err != nil {
			return nil, fmt.Errorf("winloop: register metrics: %w", err)
		}
	}

	if conf.TracingEnabled {
		l.tracer = otel.Tracer(tracerName)
	} else {
		l.tracer = noop.NewTracerProvider().Tracer(tracerName)
	}

	if conf.ObserveEnabled && l.tap == nil {
		if err := l.setupTap(deps); err != nil {
			return nil, err
		}
	}

	log.Info("Creating event loop", loggingpkg.LogFields{
		"metrics_enabled": conf.MetricsEnabled,
		"tracing_enabled": conf.TracingEnabled,
		"observe_enabled": l.tap != nil,
		"config":          conf,
	})
	return l, nil
}

func (l *EventLoop) setupTap(deps Dependencies) error {
	publisher := deps.Publisher
	if publisher == nil {
		registry := deps.Sinks
		if registry == nil {
			registry = sink.DefaultRegistry
		}
		built, err := registry.Build(context.Background(), sink.Options{
			Name: l.Conf.ObserveSink,
			File: l.Conf.ObserveFile,
		}, loggingpkg.NewWatermillAdapter(l.Logger))
		if err != nil {
			return fmt.Errorf("winloop: build observe sink: %w", err)
		}
		l.sink = &built
		publisher = built.Publisher
	}

	tap, err := observe.NewTap(publisher, l.Conf.ObserveTopic, l.Logger)
	if err != nil {
		if l.sink != nil {
			_ = l.sink.Close()
		}
		return err
	}
	l.tap = tap
	return nil
}

// Run hands control to the backend until the loop exits. It may be called
// once; later calls return ErrLoopAlreadyRun. Backend failures are returned
// wrapped, after Exited has been dispatched.
func (l *EventLoop) Run(ctx context.Context, handler Handler) error {
	if handler == nil {
		return errspkg.ErrHandlerRequired
	}
	if !l.ran.CompareAndSwap(false, true) {
		return errspkg.ErrLoopAlreadyRun
	}
	l.ctx = ctx
	l.handler = Chain(handler, l.middlewares...)

	l.Logger.Info("Starting event loop", nil)
	err := l.backend.Run(ctx, loopCallbacks{loop: l})
	l.exit()
	if l.hooks.OnExited != nil {
		l.hooks.OnExited(err)
	}
	_ = l.Close()

	if err != nil {
		l.Logger.Error("Window backend failed", err, nil)
		return fmt.Errorf("winloop: backend: %w", err)
	}
	return nil
}

// Close releases the observe sink the loop built for itself. Run calls it
// on return; call it directly for a loop that is never run. A closed loop
// cannot be run. Close must not be called while Run is in progress.
func (l *EventLoop) Close() error {
	l.closeOnce.Do(func() {
		l.ran.Store(true)
		if l.sink == nil {
			return
		}
		if err := l.sink.Close(); err != nil {
			l.Logger.Error("Failed to close observe sink", err, nil)
			l.closeErr = err
		}
	})
	return l.closeErr
}

// Observed returns the subscriber side of the sink the loop built for its
// Tap, or nil when the caller supplied the Tap or its publisher. The sink
// is closed by Close, which Run calls on return.
func (l *EventLoop) Observed() message.Subscriber {
	if l.sink == nil {
		return nil
	}
	return l.sink.Subscriber
}

// Phase returns the current loop phase.
func (l *EventLoop) Phase() Phase {
	return Phase(l.phase.Load())
}

// Sender returns a Sender feeding this loop. It may be used from any
// goroutine.
func (l *EventLoop) Sender() events.Sender {
	return l.sender.Clone()
}

// Registry exposes the window registry.
func (l *EventLoop) Registry() *window.Registry {
	return l.registry
}

func (l *EventLoop) transition(to Phase) bool {
	for {
		from := l.Phase()
		if !from.canTransition(to) {
			return false
		}
		if l.phase.CompareAndSwap(int32(from), int32(to)) {
			l.Logger.Debug("Event loop transition", loggingpkg.LogFields{
				"from": from.String(),
				"to":   to.String(),
			})
			return true
		}
	}
}

func (l *EventLoop) resumed() {
	if !l.transition(PhaseStarted) {
		return
	}
	l.dispatch(events.Started{})
	l.transition(PhaseRunning)
	if l.hooks.OnStarted != nil {
		l.hooks.OnStarted()
	}
}

func (l *EventLoop) tick() bool {
	switch l.Phase() {
	case PhaseExited:
		return false
	case PhaseRunning:
	default:
		return true
	}

	started := time.Now()
	l.ticks++
	_, span := l.tracer.Start(l.ctx, "EventLoop.Tick")
	defer span.End()

	drained := 0
	for l.Phase() == PhaseRunning {
		ev, ok := l.receiver.Next()
		if !ok {
			break
		}
		drained++
		l.route(ev)
	}
	if l.Phase() == PhaseRunning {
		l.dispatch(events.EventsCleared{})
	}

	live := l.registry.Len()
	span.SetAttributes(
		attribute.Int("winloop.events_drained", drained),
		attribute.Int("winloop.windows_live", live),
	)
	l.metrics.RecordTick()
	l.metrics.SetLiveWindows(live)

	if l.hooks.OnTick != nil {
		l.hooks.OnTick(TickContext{
			Tick:        l.ticks,
			Drained:     drained,
			WindowsLive: live,
			Duration:    time.Since(started),
		})
	}
	return l.Phase() != PhaseExited
}

func (l *EventLoop) route(ev events.Event) {
	switch ev := ev.(type) {
	case events.Quit:
		l.exit()
	case window.Request:
		l.apply(ev)
	case window.Resized:
		if !l.registry.Resize(ev.ID, ev.Size) {
			l.Logger.Debug("Dropping resize for unknown window", loggingpkg.LogFields{"window_id": ev.ID.String()})
			return
		}
		l.dispatch(ev)
	case window.Closed:
		l.metrics.RecordWindowClosed()
		l.dispatch(ev)
	default:
		l.dispatch(ev)
	}
}

func (l *EventLoop) apply(req window.Request) {
	fields := loggingpkg.LogFields{
		"window_id":    req.WindowID().String(),
		"request_type": events.TypeName(req),
	}

	if err := l.backend.Apply(req); err != nil {
		l.Logger.Error("Backend rejected window request", err, fields)
		if create, ok := req.(window.CreateRequest); ok {
			cause := errspkg.NewUnsupportedError(err)
			if l.registry.Fail(create.ID, cause) {
				l.dispatch(window.Ready{ID: create.ID, Err: cause})
			}
		}
		return
	}

	if _, ok := req.(window.CreateRequest); ok {
		l.metrics.RecordWindowCreated()
	}
	l.registry.Apply(req)
	l.Logger.Trace("Applied window request", fields)
}

func (l *EventLoop) windowCreated(id window.ID, m backend.Materialized) {
	if l.Phase() == PhaseExited {
		return
	}

	if m.Err != nil {
		if l.registry.Fail(id, m.Err) {
			l.dispatch(window.Ready{ID: id, Err: m.Err})
		}
		return
	}

	if !l.registry.Materialize(id, m.PlatformID, m.Handle, m.Size) {
		l.Logger.Debug("Destroying window released before materialization", loggingpkg.LogFields{"window_id": id.String()})
		if err := l.backend.Apply(window.DestroyRequest{ID: id}); err != nil {
			l.Logger.Error("Failed to destroy stale window", err, loggingpkg.LogFields{"window_id": id.String()})
		}
		return
	}
	l.dispatch(window.Ready{ID: id})
}

func (l *EventLoop) windowEvent(pid window.PlatformID, ev backend.NativeEvent) {
	if l.Phase() == PhaseExited {
		return
	}

	id, ok := l.registry.Resolve(pid)
	if !ok {
		l.Logger.Debug("Dropping event for unknown platform window", loggingpkg.LogFields{
			"platform_id": uint64(pid),
			"event_type":  events.TypeName(ev),
		})
		return
	}

	switch ev := ev.(type) {
	case backend.NativeResized:
		l.route(window.Resized{ID: id, Size: ev.Size})
	case backend.NativeRedraw:
		l.dispatch(window.RedrawRequested{ID: id})
	case backend.NativeCloseRequested:
		l.registry.Close(id)
	case backend.NativeInput:
		l.dispatch(window.InputEvent{ID: id, Input: ev.Input})
	}
}

func (l *EventLoop) deviceInput(in input.Input) {
	if in == nil {
		return
	}
	l.dispatch(in)
}

// exit moves the loop to Exited. Only the first call has an effect; a quit
// raised while handling Exited lands on a closed receiver and is dropped.
func (l *EventLoop) exit() {
	if !l.transition(PhaseExited) {
		return
	}
	l.receiver.Close()
	l.emit(events.Exited{})
	l.metrics.SetLiveWindows(l.registry.Len())
	l.Logger.Info("Event loop exited", loggingpkg.LogFields{"windows_live": l.registry.Len()})
}

func (l *EventLoop) dispatch(ev events.Event) {
	if l.Phase() == PhaseExited {
		return
	}
	l.emit(ev)
}

func (l *EventLoop) emit(ev events.Event) {
	l.metrics.RecordDispatch(events.TypeName(ev))
	if l.tap != nil {
		// Publish logs its own failures.
		_ = l.tap.Publish(ev)
	}
	if l.handler != nil {
		l.handler(ev, l.wctx)
	}
}

// loopCallbacks keeps the backend entry points off the EventLoop's public
// surface.
type loopCallbacks struct {
	loop *EventLoop
}

func (c loopCallbacks) Resumed()   { c.loop.resumed() }
func (c loopCallbacks) Tick() bool { return c.loop.tick() }

func (c loopCallbacks) DeviceInput(in input.Input) {
	c.loop.deviceInput(in)
}

func (c loopCallbacks) WindowCreated(id window.ID, m backend.Materialized) {
	c.loop.windowCreated(id, m)
}

func (c loopCallbacks) WindowEvent(pid window.PlatformID, ev backend.NativeEvent) {
	c.loop.windowEvent(pid, ev)
}
