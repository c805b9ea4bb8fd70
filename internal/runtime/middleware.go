package runtime

import (
	"fmt"
	"runtime/debug"

	"github.com/drblury/winloop/internal/runtime/events"
	loggingpkg "github.com/drblury/winloop/internal/runtime/logging"
)

// Middleware wraps a Handler. Middlewares run in registration order, the
// first one registered being the outermost.
type Middleware func(next Handler) Handler

// Chain wraps h in mws.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}

// LogEventsMiddleware logs every dispatched event at trace level.
func LogEventsMiddleware(logger loggingpkg.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ev events.Event, ctx *WindowContext) {
			logger.Trace("Dispatching event", loggingpkg.LogFields{
				"event_type": events.TypeName(ev),
				"event":      events.Describe(ev),
			})
			next(ev, ctx)
		}
	}
}

// FilterMiddleware drops events for which keep reports false. Exited is
// always delivered.
func FilterMiddleware(keep func(ev events.Event) bool) Middleware {
	return func(next Handler) Handler {
		return func(ev events.Event, ctx *WindowContext) {
			if events.Is[events.Exited](ev) || keep(ev) {
				next(ev, ctx)
			}
		}
	}
}

// RecovererMiddleware recovers a panicking handler, logs the panic with its
// stack and keeps the loop running.
func RecovererMiddleware(logger loggingpkg.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ev events.Event, ctx *WindowContext) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Handler panicked", fmt.Errorf("panic: %v", r), loggingpkg.LogFields{
						"event_type": events.TypeName(ev),
						"stack":      string(debug.Stack()),
					})
				}
			}()
			next(ev, ctx)
		}
	}
}
