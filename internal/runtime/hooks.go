package runtime

import (
	"time"

	loggingpkg "github.com/drblury/winloop/internal/runtime/logging"
)

// TickContext describes one completed tick to hooks.
type TickContext struct {
	// Tick is the 1-based tick number.
	Tick uint64
	// Drained is the number of events popped off the channel.
	Drained int
	// WindowsLive is the number of registered windows after the tick.
	WindowsLive int
	// Duration is how long the tick took, handler calls included.
	Duration time.Duration
}

// LoopHooks defines callbacks for loop lifecycle events.
// All hooks are optional - nil hooks are simply not called.
type LoopHooks struct {
	// OnStarted is called after Started has been dispatched.
	OnStarted func()

	// OnTick is called after each tick that ran while the loop was running.
	OnTick func(ctx TickContext)

	// OnExited is called once, after Exited has been dispatched. err is the
	// backend failure, if any.
	OnExited func(err error)
}

// Merge combines two LoopHooks, creating a new LoopHooks that calls both.
// The hooks from 'other' are called after the hooks from 'h'.
func (h LoopHooks) Merge(other LoopHooks) LoopHooks {
	return LoopHooks{
		OnStarted: chainStartedHooks(h.OnStarted, other.OnStarted),
		OnTick:    chainTickHooks(h.OnTick, other.OnTick),
		OnExited:  chainExitedHooks(h.OnExited, other.OnExited),
	}
}

func chainStartedHooks(a, b func()) func() {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func() {
		a()
		b()
	}
}

func chainTickHooks(a, b func(TickContext)) func(TickContext) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx TickContext) {
		a(ctx)
		b(ctx)
	}
}

func chainExitedHooks(a, b func(error)) func(error) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(err error) {
		a(err)
		b(err)
	}
}

// LoggingHooks returns hooks that log the loop lifecycle. Ticks are logged at
// trace level.
func LoggingHooks(logger loggingpkg.Logger) LoopHooks {
	return LoopHooks{
		OnStarted: func() {
			logger.Info("Event loop started", nil)
		},
		OnTick: func(ctx TickContext) {
			logger.Trace("Tick completed", loggingpkg.LogFields{
				"tick":         ctx.Tick,
				"drained":      ctx.Drained,
				"windows_live": ctx.WindowsLive,
				"duration":     ctx.Duration.String(),
			})
		},
		OnExited: func(err error) {
			if err != nil {
				logger.Error("Event loop stopped with error", err, nil)
				return
			}
			logger.Info("Event loop stopped", nil)
		},
	}
}

// SlowTickHooks returns hooks that report ticks taking longer than
// threshold.
func SlowTickHooks(threshold time.Duration, onSlow func(ctx TickContext)) LoopHooks {
	return LoopHooks{
		OnTick: func(ctx TickContext) {
			if ctx.Duration > threshold && onSlow != nil {
				onSlow(ctx)
			}
		},
	}
}
