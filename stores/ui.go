package stores

import "sync"

type UIState struct {
	MenuOpen   bool `json:"menuOpen"`
	SearchOpen bool `json:"searchOpen"`
}

// UIStore holds client-only overlay toggles. Opening one overlay closes the
// other. Nothing is persisted.
type UIStore struct {
	mu    sync.Mutex
	state UIState
}

func (s *UIStore) State() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *UIStore) ToggleMenu() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MenuOpen = !s.state.MenuOpen
	if s.state.MenuOpen {
		s.state.SearchOpen = false
	}
	return s.state
}

func (s *UIStore) ToggleSearch() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchOpen = !s.state.SearchOpen
	if s.state.SearchOpen {
		s.state.MenuOpen = false
	}
	return s.state
}

func (s *UIStore) CloseAll() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = UIState{}
	return s.state
}
