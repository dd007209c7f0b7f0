package match

import "github.com/pthm-cable/pong/court"

// Score tracks points and per-point rally hits for both sides.
type Score struct {
	Left  int
	Right int

	PointsToWin int
	WinByTwo    bool

	// Rally-hit tallies for the current point; reset at every serve.
	HitsLeft  int
	HitsRight int
}

// NewScore creates a zeroed score with the given win condition.
func NewScore(pointsToWin int, winByTwo bool) *Score {
	return &Score{PointsToWin: pointsToWin, WinByTwo: winByTwo}
}

// AddPoint credits a point to side.
func (s *Score) AddPoint(side court.Side) {
	if side == court.SideLeft {
		s.Left++
	} else {
		s.Right++
	}
}

// TrackHit credits a paddle-ball contact to side for the current point.
func (s *Score) TrackHit(side court.Side) {
	if side == court.SideLeft {
		s.HitsLeft++
	} else {
		s.HitsRight++
	}
}

// Hits returns side's rally-hit count for the current point.
func (s *Score) Hits(side court.Side) int {
	if side == court.SideLeft {
		return s.HitsLeft
	}
	return s.HitsRight
}

// ResetHits zeroes the rally tallies for a new point.
func (s *Score) ResetHits() {
	s.HitsLeft = 0
	s.HitsRight = 0
}

// Reset zeroes everything for a new game.
func (s *Score) Reset() {
	s.Left = 0
	s.Right = 0
	s.ResetHits()
}

// Winner reports whether the game is decided: a side has reached
// PointsToWin and, when WinByTwo is set, leads by at least two.
func (s *Score) Winner() (court.Side, bool) {
	hi, lo := s.Left, s.Right
	side := court.SideLeft
	if s.Right > s.Left {
		hi, lo = s.Right, s.Left
		side = court.SideRight
	}
	if hi < s.PointsToWin {
		return side, false
	}
	if s.WinByTwo && hi-lo < 2 {
		return side, false
	}
	return side, true
}
