// Package headless provides an in-memory Backend with no platform behind
// it. It materializes windows instantly, lets callers inject native events
// and is deterministic enough to drive the event loop from tests.
package headless

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/drblury/winloop/internal/runtime/backend"
	errspkg "github.com/drblury/winloop/internal/runtime/errors"
	"github.com/drblury/winloop/internal/runtime/input"
	"github.com/drblury/winloop/internal/runtime/window"
)

// ErrTickLimit is returned by Run when Options.MaxTicks is reached before the
// loop exits.
var ErrTickLimit = errors.New("headless: tick limit reached")

// Options tune a headless Backend.
type Options struct {
	// CreateError, when set, is consulted for every CreateRequest. A non-nil
	// result fails the creation. Errors that are not already a
	// *errors.WindowCreationError are reported as OS errors.
	CreateError func(window.Settings) error
	// ResumeCount is how many times Resumed is called before the first
	// tick. Zero means once.
	ResumeCount int
	// MaxTicks caps the number of ticks. Zero means no cap.
	MaxTicks int
}

// Window is a snapshot of a live headless window.
type Window struct {
	ID         window.ID
	PlatformID window.PlatformID
	Settings   window.Settings
	Redraws    int
}

type native struct {
	pid window.PlatformID
	ev  backend.NativeEvent
}

// Backend is the headless backend. The zero value is not usable; call New.
type Backend struct {
	opts Options

	mu        sync.Mutex
	nextPID   window.PlatformID
	pending   []window.CreateRequest
	windows   map[window.ID]*Window
	byPID     map[window.PlatformID]window.ID
	natives   []native
	inputs    []input.Input
	destroyed []window.ID
	ticks     int
}

var _ backend.Backend = (*Backend)(nil)

// New creates a headless backend.
func New(opts Options) *Backend {
	return &Backend{
		opts:    opts,
		windows: make(map[window.ID]*Window),
		byPID:   make(map[window.PlatformID]window.ID),
	}
}

// Run drives cb until Tick reports false, ctx is cancelled or the tick cap
// is hit.
func (b *Backend) Run(ctx context.Context, cb backend.Callbacks) error {
	resumes := max(b.opts.ResumeCount, 1)
	for range resumes {
		cb.Resumed()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		b.materialize(cb)
		b.deliver(cb)

		if !cb.Tick() {
			return nil
		}

		b.mu.Lock()
		b.ticks++
		ticks := b.ticks
		b.mu.Unlock()

		if b.opts.MaxTicks > 0 && ticks >= b.opts.MaxTicks {
			return ErrTickLimit
		}
	}
}

// Apply acts on a window request.
func (b *Backend) Apply(req window.Request) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch req := req.(type) {
	case window.CreateRequest:
		b.pending = append(b.pending, req)
	case window.DestroyRequest:
		b.destroy(req.ID)
	case window.TitleRequest:
		return b.update(req.ID, func(s *window.Settings) { s.Title = req.Title })
	case window.FullscreenRequest:
		return b.update(req.ID, func(s *window.Settings) { s.Fullscreen = req.Mode })
	case window.RedrawRequest:
		if w, ok := b.windows[req.ID]; ok {
			w.Redraws++
			b.natives = append(b.natives, native{pid: w.PlatformID, ev: backend.NativeRedraw{}})
			return nil
		}
		if !b.isPending(req.ID) {
			return errspkg.ErrWindowClosed
		}
	default:
		return errspkg.ErrUnsupportedRequest
	}
	return nil
}

// update changes the settings of a live window, or of a pending one before
// it is built. Caller holds b.mu.
func (b *Backend) update(id window.ID, fn func(*window.Settings)) error {
	if w, ok := b.windows[id]; ok {
		fn(&w.Settings)
		return nil
	}
	for i := range b.pending {
		if b.pending[i].ID == id {
			fn(&b.pending[i].Settings)
			return nil
		}
	}
	return errspkg.ErrWindowClosed
}

func (b *Backend) isPending(id window.ID) bool {
	return slices.ContainsFunc(b.pending, func(r window.CreateRequest) bool {
		return r.ID == id
	})
}

// destroy must be called with b.mu held. Destroying an unknown window is a
// no-op.
func (b *Backend) destroy(id window.ID) {
	b.pending = slices.DeleteFunc(b.pending, func(r window.CreateRequest) bool {
		return r.ID == id
	})

	w, ok := b.windows[id]
	if !ok {
		return
	}
	delete(b.windows, id)
	delete(b.byPID, w.PlatformID)
	b.natives = slices.DeleteFunc(b.natives, func(n native) bool {
		return n.pid == w.PlatformID
	})
	b.destroyed = append(b.destroyed, id)
}

func (b *Backend) materialize(cb backend.Callbacks) {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, req := range pending {
		if b.opts.CreateError != nil {
			if err := b.opts.CreateError(req.Settings); err != nil {
				var wce *errspkg.WindowCreationError
				if !errors.As(err, &wce) {
					err = errspkg.NewOsError(err)
				}
				cb.WindowCreated(req.ID, backend.Materialized{Err: err})
				continue
			}
		}

		b.mu.Lock()
		b.nextPID++
		w := &Window{ID: req.ID, PlatformID: b.nextPID, Settings: req.Settings}
		b.windows[req.ID] = w
		b.byPID[w.PlatformID] = req.ID
		b.mu.Unlock()

		cb.WindowCreated(req.ID, backend.Materialized{
			PlatformID: w.PlatformID,
			Handle:     w.PlatformID,
			Size:       req.Settings.Size,
		})
	}
}

func (b *Backend) deliver(cb backend.Callbacks) {
	b.mu.Lock()
	natives := b.natives
	inputs := b.inputs
	b.natives = nil
	b.inputs = nil
	b.mu.Unlock()

	for _, n := range natives {
		cb.WindowEvent(n.pid, n.ev)
	}
	for _, in := range inputs {
		cb.DeviceInput(in)
	}
}

// Inject queues a native event for a live window. It reports false when the
// window has not been materialized or is gone.
func (b *Backend) Inject(id window.ID, ev backend.NativeEvent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, ok := b.windows[id]
	if !ok {
		return false
	}
	if r, ok := ev.(backend.NativeResized); ok {
		w.Settings.Size = r.Size
	}
	b.natives = append(b.natives, native{pid: w.PlatformID, ev: ev})
	return true
}

// InjectPlatform queues a native event for pid whether or not such a window
// exists.
func (b *Backend) InjectPlatform(pid window.PlatformID, ev backend.NativeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.natives = append(b.natives, native{pid: pid, ev: ev})
}

// InjectInput queues device input.
func (b *Backend) InjectInput(in input.Input) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inputs = append(b.inputs, in)
}

// Resize simulates the user resizing a window.
func (b *Backend) Resize(id window.ID, size window.Size) bool {
	return b.Inject(id, backend.NativeResized{Size: size})
}

// CloseWindow simulates the user clicking a window's close button.
func (b *Backend) CloseWindow(id window.ID) bool {
	return b.Inject(id, backend.NativeCloseRequested{})
}

// Window returns a snapshot of a live window.
func (b *Backend) Window(id window.ID) (Window, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Len returns the number of live windows.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.windows)
}

// Destroyed returns the IDs of destroyed windows in destruction order.
func (b *Backend) Destroyed() []window.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.destroyed)
}

// Ticks returns the number of completed ticks.
func (b *Backend) Ticks() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ticks
}
