package window

import (
	"sync/atomic"

	errspkg "github.com/drblury/winloop/internal/runtime/errors"
	"github.com/drblury/winloop/internal/runtime/events"
)

// lease counts the live Handle clones of one window. The registry never
// holds a lease.
type lease struct {
	refs atomic.Int64
}

// Handle is the user's reference to a window. Clone it to share the window
// and call Release on every clone when done; the window closes when the last
// clone is released.
//
// Handles compare by ID, never structurally.
type Handle struct {
	id       ID
	state    *State
	lease    *lease
	reg      *Registry
	sender   events.Sender
	released atomic.Bool
}

func newHandle(reg *Registry, state *State, sender events.Sender) *Handle {
	l := &lease{}
	l.refs.Store(1)
	return &Handle{
		id:     state.id,
		state:  state,
		lease:  l,
		reg:    reg,
		sender: sender,
	}
}

func (h *Handle) ID() ID { return h.id }

// Size returns the last known inner size. Before the backend materializes
// the window this is the requested size.
func (h *Handle) Size() Size { return h.state.Size() }

func (h *Handle) Title() string { return h.state.Title() }

func (h *Handle) Settings() Settings { return h.state.Settings() }

func (h *Handle) FullscreenMode() FullscreenMode { return h.state.FullscreenMode() }

func (h *Handle) Phase() Phase { return h.state.Phase() }

func (h *Handle) Err() error { return h.state.Err() }

func (h *Handle) PlatformHandle() (any, bool) { return h.state.PlatformHandle() }

// Equal reports whether both handles refer to the same window.
func (h *Handle) Equal(other *Handle) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.id == other.id
}

// Released reports whether Release has been called on this clone.
func (h *Handle) Released() bool { return h.released.Load() }

// Clone returns a new handle sharing this window. Cloning a released handle
// is a use-after-release and panics.
func (h *Handle) Clone() *Handle {
	if h.released.Load() {
		panic("winloop: clone of released window handle")
	}
	h.lease.refs.Add(1)
	return &Handle{
		id:     h.id,
		state:  h.state,
		lease:  h.lease,
		reg:    h.reg,
		sender: h.sender.Clone(),
	}
}

// Release gives up this clone. Only the first call on a clone has an
// effect. Releasing the last clone closes the window.
func (h *Handle) Release() {
	if !h.released.CompareAndSwap(false, true) {
		return
	}
	if h.lease.refs.Add(-1) == 0 {
		h.reg.release(h.id)
	}
}

// SetTitle asks the backend to rename the window. The new title becomes
// visible through Title once the backend has accepted it.
func (h *Handle) SetTitle(title string) error {
	return h.request(TitleRequest{ID: h.id, Title: title})
}

// Redraw asks the backend to schedule a RedrawRequested for this window.
func (h *Handle) Redraw() error {
	return h.request(RedrawRequest{ID: h.id})
}

// SetFullscreenMode asks the backend to switch fullscreen mode.
func (h *Handle) SetFullscreenMode(mode FullscreenMode) error {
	return h.request(FullscreenRequest{ID: h.id, Mode: mode})
}

func (h *Handle) request(req Request) error {
	if h.released.Load() {
		return errspkg.ErrHandleReleased
	}
	if h.state.Phase() == PhaseClosed {
		return errspkg.ErrWindowClosed
	}
	return h.sender.Send(req)
}
