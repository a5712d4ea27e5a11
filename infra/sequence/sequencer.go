package sequence

import "sync/atomic"

// Sequencer hands out command sequence numbers. The first call to Next
// returns start+1; Current returns 0 until then.
type Sequencer struct {
	last atomic.Uint64
}

func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.last.Store(start)
	return s
}

// Next reserves the next command sequence.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Current returns the last sequence handed out.
func (s *Sequencer) Current() uint64 {
	return s.last.Load()
}
