package multiedit

import (
	"sync"

	"github.com/bethropolis/medit/internal/selection"
	"github.com/bethropolis/medit/internal/types"
)

// SurfaceState is the selection history of one view.
type SurfaceState struct {
	// suppress counts pending self-inflicted selection changes. Each one is
	// consumed by the next observer call.
	suppress int
	history  [][]types.Region // oldest first
}

// Arm announces that the next selection change is caused by the plugin.
func (s *SurfaceState) Arm() { s.suppress++ }

// Withdraw cancels an armed token whose mutation turned out to be a no-op.
func (s *SurfaceState) Withdraw() {
	if s.suppress > 0 {
		s.suppress--
	}
}

// Pending reports the number of armed tokens.
func (s *SurfaceState) Pending() int { return s.suppress }

func (s *SurfaceState) consume() bool {
	if s.suppress == 0 {
		return false
	}
	s.suppress--
	return true
}

// Len is the number of stored frames.
func (s *SurfaceState) Len() int { return len(s.history) }

// Top returns the most recent frame.
func (s *SurfaceState) Top() ([]types.Region, bool) {
	if len(s.history) == 0 {
		return nil, false
	}
	return s.history[len(s.history)-1], true
}

// Pop discards the most recent frame.
func (s *SurfaceState) Pop() {
	if len(s.history) > 0 {
		s.history = s.history[:len(s.history)-1]
	}
}

// History returns a copy of the frames, oldest first.
func (s *SurfaceState) History() [][]types.Region {
	out := make([][]types.Region, len(s.history))
	for i, frame := range s.history {
		out[i] = append([]types.Region(nil), frame...)
	}
	return out
}

// Record stores a complex selection. If the selection still covers every
// region of the top frame it was merely expanded, and the top frame is
// replaced; otherwise a new frame is pushed. maxHistory > 0 caps the stack
// by dropping the oldest frames.
func (s *SurfaceState) Record(regions []types.Region, maxHistory int) {
	frame := append([]types.Region(nil), regions...)
	if top, ok := s.Top(); ok && coversAll(regions, top) {
		s.history[len(s.history)-1] = frame
		return
	}
	s.history = append(s.history, frame)
	if maxHistory > 0 && len(s.history) > maxHistory {
		s.history = append([][]types.Region(nil), s.history[len(s.history)-maxHistory:]...)
	}
}

func coversAll(regions, want []types.Region) bool {
	for _, r := range want {
		if !selection.Covers(regions, r) {
			return false
		}
	}
	return true
}

// Store maps views to their state. States are created on first use and
// released with Forget.
type Store struct {
	mu         sync.Mutex
	states     map[types.SurfaceID]*SurfaceState
	maxHistory int
}

// NewStore creates an empty store. maxHistory 0 means unbounded.
func NewStore(maxHistory int) *Store {
	return &Store{
		states:     make(map[types.SurfaceID]*SurfaceState),
		maxHistory: maxHistory,
	}
}

// Get returns the state for id, creating it if needed.
func (s *Store) Get(id types.SurfaceID) *SurfaceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		st = &SurfaceState{}
		s.states[id] = st
	}
	return st
}

// Lookup returns the state for id without creating it.
func (s *Store) Lookup(id types.SurfaceID) (*SurfaceState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	return st, ok
}

// Forget drops the state of a closed view.
func (s *Store) Forget(id types.SurfaceID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
}

// Reset forgets every view.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[types.SurfaceID]*SurfaceState)
}

// Len is the number of tracked views.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

func (s *Store) MaxHistory() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxHistory
}

func (s *Store) SetMaxHistory(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxHistory = max(0, n)
}
