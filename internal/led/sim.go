package led

import "errors"

var ErrNotReady = errors.New("strip not ready")

// Sim is an in-memory strip. Tests toggle Busy to emulate a driver that is
// still latching, and read Frames/Shows to see what was transmitted.
type Sim struct {
	Buffer
	Busy    bool
	ShowErr error

	Shows  int
	Frames [][]byte
}

func NewSim(count int) *Sim {
	return &Sim{Buffer: NewBuffer(count)}
}

func (s *Sim) CanShow() bool { return !s.Busy }

func (s *Sim) Show() error {
	if s.Busy {
		return ErrNotReady
	}
	if s.ShowErr != nil {
		return s.ShowErr
	}
	s.Shows++
	s.Frames = append(s.Frames, s.RGB())
	return nil
}

// Last returns the most recent transmitted frame, or nil.
func (s *Sim) Last() []byte {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1]
}

func (s *Sim) Close() error { return nil }
