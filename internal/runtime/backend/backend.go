// Package backend defines the contract between the event loop and a
// platform windowing system.
//
// A Backend owns the thread that talks to the platform. It drives the loop
// by calling the Callbacks it is given, and it receives window requests
// through Apply. Everything a backend reports is keyed by PlatformID except
// window creation, which is keyed by the window.ID the request carried.
package backend

import (
	"context"

	"github.com/drblury/winloop/internal/runtime/input"
	"github.com/drblury/winloop/internal/runtime/window"
)

// Backend is a platform windowing system.
type Backend interface {
	// Run drives cb until the loop exits, ctx is cancelled or the platform
	// fails. It returns nil once Tick has reported false.
	Run(ctx context.Context, cb Callbacks) error
	// Apply acts on a window request. It is only called from inside a
	// callback, on the backend's own thread.
	//
	// Title, fullscreen and redraw requests for a window the backend does
	// not know must fail; the loop only records a request in the window
	// state when Apply returns nil. DestroyRequest must be idempotent: a
	// window released while its creation is in flight is destroyed both by
	// the loop, once WindowCreated reports it, and by the queued request.
	Apply(req window.Request) error
}

// Callbacks are the loop's entry points. They must all be called from the
// same goroutine.
type Callbacks interface {
	// Resumed is called when the platform is ready for windows. Platforms
	// may call it more than once.
	Resumed()
	// Tick runs one iteration of the loop. It returns false once the loop
	// has exited.
	Tick() bool
	// WindowCreated reports the outcome of a CreateRequest.
	WindowCreated(id window.ID, m Materialized)
	// WindowEvent delivers a platform event for one window.
	WindowEvent(pid window.PlatformID, ev NativeEvent)
	// DeviceInput delivers input not tied to any window, such as raw mouse
	// motion.
	DeviceInput(in input.Input)
}

// Materialized is what a backend reports after trying to build a window.
// When Err is set the other fields are ignored.
type Materialized struct {
	PlatformID window.PlatformID
	Handle     any
	Size       window.Size
	Err        error
}

// NativeEvent is a platform event for one window.
type NativeEvent interface {
	isNativeEvent()
}

// NativeResized reports a new inner size.
type NativeResized struct {
	Size window.Size
}

// NativeRedraw reports that the platform wants the window repainted.
type NativeRedraw struct{}

// NativeCloseRequested reports that the user asked to close the window.
type NativeCloseRequested struct{}

// NativeInput carries input received by the window.
type NativeInput struct {
	Input input.Input
}

func (NativeResized) isNativeEvent()        {}
func (NativeRedraw) isNativeEvent()         {}
func (NativeCloseRequested) isNativeEvent() {}
func (NativeInput) isNativeEvent()          {}
