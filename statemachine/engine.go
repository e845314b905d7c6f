// Package statemachine drives discrete Chart transitions with an in-memory
// token store. The store is a trimmed version of go-pflow's continuous-time
// engine.Engine: only the synchronous GetState/SetState core survives here,
// since nothing in this module ticks a Chart on a wall-clock timer — every
// transition fires in direct response to a turn-engine event, never a
// background goroutine, to keep enemy behavior reproducible turn for turn.
package statemachine

import "sync"

// tokenStore holds the live marking (place name -> token count) for a Machine.
type tokenStore struct {
	mu    sync.Mutex
	state map[string]float64
}

func newTokenStore(initialState map[string]float64) *tokenStore {
	if initialState == nil {
		initialState = make(map[string]float64)
	}
	return &tokenStore{state: initialState}
}

// GetState returns a copy of the current marking.
func (s *tokenStore) GetState() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// SetState merges the given deltas into the marking.
func (s *tokenStore) SetState(delta map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range delta {
		s.state[k] = v
	}
}
