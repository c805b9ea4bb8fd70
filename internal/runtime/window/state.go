package window

import (
	"fmt"
	"sync"
)

// Phase is the lifecycle position of a single window.
type Phase int

const (
	PhaseRequested Phase = iota
	PhaseMaterializing
	PhaseReady
	PhaseFailed
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseRequested:
		return "requested"
	case PhaseMaterializing:
		return "materializing"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the shared record behind every handle to one window. Each window
// has its own lock so reads on one window never contend with writes on
// another.
//
// Only the registry writes to State. Handles read it.
type State struct {
	id ID

	mu           sync.RWMutex
	settings     Settings
	platform     any
	platformID   PlatformID
	materialized bool
	phase        Phase
	err          error
}

func newState(id ID, settings Settings) *State {
	return &State{id: id, settings: settings, phase: PhaseRequested}
}

func (s *State) ID() ID { return s.id }

func (s *State) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *State) Size() Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Size
}

func (s *State) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Title
}

func (s *State) FullscreenMode() FullscreenMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Fullscreen
}

func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Err returns the creation failure, if the window is in PhaseFailed.
func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// PlatformHandle returns the opaque backend handle and whether the window
// has been materialized.
func (s *State) PlatformHandle() (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.platform, s.materialized
}

func (s *State) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

// materialize stores the platform half of the window. A zero size keeps the
// requested one.
func (s *State) materialize(pid PlatformID, handle any, size Size) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseClosed {
		return false
	}
	s.platform = handle
	s.platformID = pid
	s.materialized = true
	if !size.IsZero() {
		s.settings.Size = size
	}
	s.phase = PhaseReady
	return true
}

func (s *State) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseClosed {
		return
	}
	s.err = err
	s.phase = PhaseFailed
}

func (s *State) update(fn func(*Settings)) {
	s.mu.Lock()
	fn(&s.settings)
	s.mu.Unlock()
}
