package runtime

import (
	"github.com/drblury/winloop/internal/runtime/events"
	loggingpkg "github.com/drblury/winloop/internal/runtime/logging"
	"github.com/drblury/winloop/internal/runtime/window"
)

// WindowContext is handed to the Handler with every event. It is only
// valid inside the handler call.
type WindowContext struct {
	loop *EventLoop
}

// CreateWindow registers a window and asks the backend to build it. Zero
// settings fall back to the configured default window. The window is usable
// for reads immediately; window.Ready reports when it has materialized.
func (c *WindowContext) CreateWindow(settings window.Settings) (*window.Handle, error) {
	if settings.IsZero() {
		settings = c.loop.Conf.DefaultWindow
	}
	return c.loop.registry.Create(settings)
}

// Exit asks the loop to stop. The request is observed on the next drain,
// and asking again after that is a no-op.
func (c *WindowContext) Exit() {
	if err := c.loop.sender.Send(events.Quit{}); err != nil {
		c.loop.Logger.Debug("Ignoring exit request", loggingpkg.LogFields{"reason": err.Error()})
	}
}

// Sender returns a Sender feeding the loop, for use from other goroutines.
func (c *WindowContext) Sender() events.Sender {
	return c.loop.sender.Clone()
}

// WindowCount returns the number of registered windows.
func (c *WindowContext) WindowCount() int {
	return c.loop.registry.Len()
}
