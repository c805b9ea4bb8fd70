// Package winloop is a small event-loop core for windowed applications. It
// carries type-erased events between a platform backend and user code,
// drives the Started / EventsCleared / Exited sequence, and keeps a registry
// of window handles that fires exactly one Closed per window.
//
// A minimal program fills Config, picks a Backend, creates an EventLoop and
// calls Run with a Handler. Windows are created from the handler through the
// WindowContext once Started has been dispatched; see examples/headless for a
// copy/paste starting point.
//
// # Events
//
// Any value can be an event. Send pushes it on the loop's channel from any
// goroutine and the handler recovers it with As, Is or a type switch. The
// loop's own events are Started, EventsCleared and Exited; window events
// are WindowReady, WindowResized, WindowRedrawRequested, WindowClosed and
// WindowInput.
//
// Each tick drains the channel completely and then dispatches exactly one
// EventsCleared, which is the point at which redrawing is safe. A Quit,
// pushed or requested through WindowContext.Exit, ends the loop; quitting
// again after that is a no-op.
//
// # Windows
//
// CreateWindow returns a WindowHandle right away. Size and title are readable
// immediately and reflect the requested settings until the backend reports
// otherwise. Clone a handle to share it and Release every clone when done.
// Releasing the last clone, or the user closing the window, removes it from
// the registry and dispatches a single WindowClosed. SetTitle, Redraw and
// SetFullscreenMode are requests routed through the loop, never direct
// writes.
//
// # Observability
//
// Logging goes through Logger, which wraps slog or any Watermill logger.
// With Config.MetricsEnabled the loop exports Prometheus counters for ticks,
// dispatched events and window lifecycles, and Config.TracingEnabled wraps
// each tick in an OpenTelemetry span. A Tap mirrors every dispatched event
// onto a Watermill topic; NewInProcessTap builds one on Go channels. With
// Config.ObserveEnabled and no publisher supplied, the loop builds the sink
// named by Config.ObserveSink: "channel" in memory, or "file", which appends
// JSON lines that examples/tail can follow.
package winloop
