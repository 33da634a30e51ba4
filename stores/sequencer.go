package stores

import "sync/atomic"

// Sequencer hands out a monotonic token per request and accepts a response
// only when its token is newer than the last one applied. A response that
// arrives after a later request's response is stale and gets dropped.
//
// Accept must be called under the same lock that guards the state update it
// admits.
type Sequencer struct {
	issued  atomic.Uint64
	applied uint64
}

func (s *Sequencer) Begin() uint64 {
	return s.issued.Add(1)
}

func (s *Sequencer) Accept(tok uint64) bool {
	if tok <= s.applied {
		return false
	}
	s.applied = tok
	return true
}

// Current reports whether tok is newer than everything applied so far,
// without applying it.
func (s *Sequencer) Current(tok uint64) bool {
	return tok > s.applied
}

// Latest reports whether tok is the most recently issued token.
func (s *Sequencer) Latest(tok uint64) bool {
	return tok == s.issued.Load()
}
