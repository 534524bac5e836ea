package server

import "time"

// One timer per room: either the live turn's timeout or the reveal
// pause between turns. Arming replaces whatever was there.

func (s *Server) armTurnTimer(code string, token int, d time.Duration) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if existing, ok := s.timers[code]; ok {
		existing.Stop()
	}
	s.timers[code] = time.AfterFunc(d, func() {
		s.turnTimedOut(code, token)
	})
}

// armRevealPause schedules the next turn after the fixed reveal delay.
// The pause is not cancellable; advanceTurn re-checks room existence
// when it fires, so a deleted room simply goes quiet.
func (s *Server) armRevealPause(code string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if existing, ok := s.timers[code]; ok {
		existing.Stop()
	}
	s.timers[code] = time.AfterFunc(s.revealPause(), func() {
		s.advanceTurn(code)
	})
}

func (s *Server) cancelRoomTimer(code string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[code]; ok {
		timer.Stop()
		delete(s.timers, code)
	}
}

func (s *Server) revealPause() time.Duration {
	return time.Duration(s.cfg.RevealPauseMillis) * time.Millisecond
}
