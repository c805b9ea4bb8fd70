package window

import (
	"errors"
	"sync"
	"weak"

	errspkg "github.com/drblury/winloop/internal/runtime/errors"
	"github.com/drblury/winloop/internal/runtime/events"
	"github.com/drblury/winloop/internal/runtime/logging"
)

type entry struct {
	state    weak.Pointer[State]
	platform PlatformID
	bound    bool
}

// Registry maps window IDs to their shared state and owns the close
// protocol. It holds only weak references: a window stays registered for as
// long as some Handle clone is unreleased, and no longer.
//
// Every window leaves the registry exactly once, either when its last handle
// is released or when the backend closes it. Leaving pushes a DestroyRequest
// followed by a Closed event.
type Registry struct {
	mu        sync.Mutex
	entries   map[ID]*entry
	platforms map[PlatformID]ID

	sender events.Sender
	logger logging.Logger
}

// NewRegistry creates an empty registry that pushes its events through
// sender.
func NewRegistry(sender events.Sender, logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Registry{
		entries:   make(map[ID]*entry),
		platforms: make(map[PlatformID]ID),
		sender:    sender,
		logger:    logger,
	}
}

// Create registers a new window and asks the backend to materialize it. The
// returned handle is the window's only clone.
func (r *Registry) Create(settings Settings) (*Handle, error) {
	id := NewID()
	st := newState(id, settings)
	h := newHandle(r, st, r.sender.Clone())

	r.mu.Lock()
	r.entries[id] = &entry{state: weak.Make(st)}
	r.mu.Unlock()
	st.setPhase(PhaseMaterializing)

	if err := r.sender.Send(CreateRequest{ID: id, Settings: settings}); err != nil {
		r.mu.Lock()
		delete(r.entries, id)
		r.mu.Unlock()
		st.setPhase(PhaseClosed)
		h.released.Store(true)
		return nil, err
	}

	r.logger.Debug("Window requested", logging.LogFields{
		"window_id": id.String(),
		"title":     settings.Title,
		"size":      settings.Size.String(),
	})
	return h, nil
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Contains reports whether id is still registered.
func (r *Registry) Contains(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Resolve maps a backend platform id to the window it belongs to.
func (r *Registry) Resolve(pid PlatformID) (ID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.platforms[pid]
	return id, ok
}

// upgrade returns the live state for id. A registered entry whose state has
// been collected is removed on the spot.
func (r *Registry) upgrade(id ID) (*State, bool) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	st := e.state.Value()
	if st == nil {
		r.remove(id)
		return nil, false
	}
	return st, true
}

// Materialize records the backend half of a window. It reports false when
// the window is already gone, in which case the caller should destroy the
// platform window it just built.
func (r *Registry) Materialize(id ID, pid PlatformID, handle any, size Size) bool {
	st, ok := r.upgrade(id)
	if !ok || !st.materialize(pid, handle, size) {
		return false
	}

	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		e.platform = pid
		e.bound = true
		r.platforms[pid] = id
	}
	r.mu.Unlock()
	if !ok {
		return false
	}

	r.logger.Debug("Window materialized", logging.LogFields{
		"window_id":   id.String(),
		"platform_id": uint64(pid),
		"size":        st.Size().String(),
	})
	return true
}

// Fail marks a window as failed to materialize. The entry stays until its
// last handle is released.
func (r *Registry) Fail(id ID, err error) bool {
	st, ok := r.upgrade(id)
	if !ok {
		return false
	}
	st.fail(err)
	r.logger.Error("Window creation failed", err, logging.LogFields{"window_id": id.String()})
	return true
}

// Resize writes a backend-reported size. A stale id is dropped silently.
func (r *Registry) Resize(id ID, size Size) bool {
	st, ok := r.upgrade(id)
	if !ok {
		return false
	}
	st.update(func(s *Settings) { s.Size = size })
	return true
}

// Apply writes an accepted advisory request back into the window state.
func (r *Registry) Apply(req Request) bool {
	st, ok := r.upgrade(req.WindowID())
	if !ok {
		return false
	}
	switch req := req.(type) {
	case TitleRequest:
		st.update(func(s *Settings) { s.Title = req.Title })
	case FullscreenRequest:
		st.update(func(s *Settings) { s.Fullscreen = req.Mode })
	}
	return true
}

// Close removes a window on behalf of the backend, for example when the
// user clicks the close button. Handles still held keep working as readers
// but their requests fail with ErrWindowClosed.
func (r *Registry) Close(id ID) bool {
	return r.remove(id)
}

func (r *Registry) release(id ID) {
	r.remove(id)
}

func (r *Registry) remove(id ID) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.entries, id)
	if e.bound {
		delete(r.platforms, e.platform)
	}
	r.mu.Unlock()

	if st := e.state.Value(); st != nil {
		st.setPhase(PhaseClosed)
	}

	r.push(DestroyRequest{ID: id})
	r.push(Closed{ID: id})
	r.logger.Debug("Window closed", logging.LogFields{"window_id": id.String()})
	return true
}

func (r *Registry) push(ev events.Event) {
	err := r.sender.Send(ev)
	if err == nil {
		return
	}
	if errors.Is(err, errspkg.ErrReceiverDropped) {
		r.logger.Debug("Dropping window event after shutdown", logging.LogFields{
			"event_type": events.TypeName(ev),
		})
		return
	}
	r.logger.Error("Failed to push window event", err, logging.LogFields{
		"event_type": events.TypeName(ev),
	})
}
