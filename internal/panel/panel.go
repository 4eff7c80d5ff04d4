// Package panel tracks the trading panel's presentation state. The UI shell
// owns rendering; this only decides when settlement is user-triggerable.
package panel

import "sync"

// State is the panel's position, size, and visibility plus an in-flight latch
// that keeps a second settlement attempt from starting while one is
// outstanding. Mutex-guarded because the UI event loop pokes it.
type State struct {
	mu       sync.Mutex
	x, y     int
	w, h     int
	visible  bool
	inFlight bool
}

// New returns a panel at the given geometry, hidden until Show.
func New(x, y, w, h int) *State {
	return &State{x: x, y: y, w: w, h: h}
}

func (s *State) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = true
}

func (s *State) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
}

// Move updates the panel origin.
func (s *State) Move(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = x, y
}

// Resize updates the panel dimensions, ignoring non-positive sizes.
func (s *State) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w > 0 && h > 0 {
		s.w, s.h = w, h
	}
}

// Bounds returns the current geometry.
func (s *State) Bounds() (x, y, w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y, s.w, s.h
}

// CanTrigger reports whether the settle affordance should be enabled: the
// panel is visible and no attempt is outstanding.
func (s *State) CanTrigger() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible && !s.inFlight
}

// Begin latches an attempt, returning false if the panel is hidden or one is
// already in flight.
func (s *State) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible || s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// End releases the latch after an attempt resolves, whatever the outcome.
func (s *State) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}
