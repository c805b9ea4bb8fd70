/*
Package runtime provides the event loop at the core of winloop.

# Architecture Overview

The EventLoop sits between a window backend and a user Handler. The backend
owns the platform message pump and calls back into the loop; the loop turns
those callbacks, together with anything pushed on its event channel, into
the sequence the Handler sees: Started once, per tick every drained event
followed by one EventsCleared, and Exited once.

# Package Structure

## Event Loop (loop.go)

EventLoop tracks its Phase (Created, Started, Running, Exited), routes
window requests to the backend and keeps the window registry in sync with
what the backend reports. A Quit anywhere in the channel ends the loop;
events behind it are never dispatched.

## Window Context (context.go)

WindowContext is handed to the Handler with every event. It creates
windows, requests exit and hands out Senders.

## Hooks and Middleware (hooks.go, middleware.go)

LoopHooks observe the loop lifecycle without touching events. Middleware
wraps the Handler:
  - LogEventsMiddleware: Trace every dispatched event
  - FilterMiddleware: Drop events the handler does not care about
  - RecovererMiddleware: Keep the loop alive when the handler panics

## Metrics (metrics.go)

LoopMetrics exports Prometheus counters for ticks, dispatched events and
window lifecycles when Config.MetricsEnabled is set.

# Sub-packages

  - backend: The Backend contract and the native events it reports
  - backend/headless: An in-memory backend for tests and tools
  - config: YAML configuration and validation
  - errors: Sentinel and structured errors
  - events: Type-erased events, the event channel and Poller
  - ids: ULID generation
  - input: Keyboard and mouse input values
  - logging: The Logger interface over slog and Watermill
  - observe: Mirrors dispatched events onto a Watermill topic
  - observe/sink: Named publisher/subscriber pairs for observe
  - window: Settings, handles and the refcounted window registry

# Usage Example

	loop, err := runtime.NewEventLoop(config.Default(), logger, runtime.Dependencies{
		Backend: headless.New(headless.Options{}),
	})
	if err != nil {
		return err
	}
	return loop.Run(ctx, func(ev events.Event, wctx *runtime.WindowContext) {
		switch ev.(type) {
		case events.Started:
			handle, _ = wctx.CreateWindow(window.DefaultSettings())
		case window.Closed:
			wctx.Exit()
		}
	})
*/
package runtime
