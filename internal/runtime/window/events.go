package window

import "github.com/drblury/winloop/internal/runtime/input"

// Request is an instruction for the backend. Requests travel on the event
// channel like any other event and are consumed by the loop before user
// code sees them.
type Request interface {
	WindowID() ID
	isRequest()
}

// CreateRequest asks the backend to materialize a new platform window.
type CreateRequest struct {
	ID       ID
	Settings Settings
}

// TitleRequest asks the backend to rename a window.
type TitleRequest struct {
	ID    ID
	Title string
}

// RedrawRequest asks the backend to schedule a redraw.
type RedrawRequest struct {
	ID ID
}

// FullscreenRequest asks the backend to switch fullscreen mode.
type FullscreenRequest struct {
	ID   ID
	Mode FullscreenMode
}

// DestroyRequest asks the backend to tear down its platform window. It is
// sent once per window, right before Closed.
type DestroyRequest struct {
	ID ID
}

func (r CreateRequest) WindowID() ID     { return r.ID }
func (r TitleRequest) WindowID() ID      { return r.ID }
func (r RedrawRequest) WindowID() ID     { return r.ID }
func (r FullscreenRequest) WindowID() ID { return r.ID }
func (r DestroyRequest) WindowID() ID    { return r.ID }

func (CreateRequest) isRequest()     {}
func (TitleRequest) isRequest()      {}
func (RedrawRequest) isRequest()     {}
func (FullscreenRequest) isRequest() {}
func (DestroyRequest) isRequest()    {}

// Ready reports the outcome of a CreateRequest. Err is nil on success and a
// *errors.WindowCreationError otherwise.
type Ready struct {
	ID  ID
	Err error
}

// Resized reports the new inner size of a window. Backends push it on the
// channel; the loop writes it into the window state before dispatching it.
type Resized struct {
	ID   ID
	Size Size
}

// RedrawRequested is dispatched when the platform wants a window repainted.
type RedrawRequested struct {
	ID ID
}

// Closed is dispatched exactly once per window, after the registry entry is
// gone.
type Closed struct {
	ID ID
}

// InputEvent carries input targeted at a specific window.
type InputEvent struct {
	ID    ID
	Input input.Input
}
