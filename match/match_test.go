package match

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/telemetry"
)

// stubPlayer holds still unless given a fixed per-tick direction.
type stubPlayer struct {
	paddle *court.Paddle
	dy     float64
}

func (s *stubPlayer) Update(neural.Features) {
	switch {
	case s.dy < 0:
		s.paddle.MoveUp()
	case s.dy > 0:
		s.paddle.MoveDown()
	}
}

func (s *stubPlayer) Paddle() *court.Paddle { return s.paddle }

type testMatch struct {
	m     *Match
	clock *LogicalClock
	left  *stubPlayer
	right *stubPlayer
}

func newTestMatch(score *Score, headless bool, rec *telemetry.Recorder) *testMatch {
	field := court.Playfield{Width: 800, Height: 600, HeaderHeight: 60}
	rng := rand.New(rand.NewSource(1))
	ball := court.NewBall(field, 15, 5, 15, 0.5, rng)
	left := &stubPlayer{paddle: court.NewPaddle(field, court.SideLeft, 50, 15, 90, 5)}
	right := &stubPlayer{paddle: court.NewPaddle(field, court.SideRight, 735, 15, 90, 5)}
	clock := NewLogicalClock(time.Second / 60)

	m := New(Options{
		Field:      field,
		Ball:       ball,
		Left:       left,
		Right:      right,
		Encoder:    neural.NewStateEncoder(field, 15, 90),
		Score:      score,
		Clock:      clock.Now,
		ResetDelay: 100 * time.Millisecond,
		Headless:   headless,
		Recorder:   rec,
	})
	return &testMatch{m: m, clock: clock, left: left, right: right}
}

// aimAtLeftGoal points the ball one tick away from crossing x = 0.
func (tm *testMatch) aimAtLeftGoal() {
	b := tm.m.Ball()
	b.X, b.Y = 2, 300
	b.DX, b.DY = -5, 0
	b.Speed = 5
}

func TestMatchServeToRally(t *testing.T) {
	tm := newTestMatch(NewScore(11, true), true, nil)

	if tm.m.Phase() != Serving {
		t.Fatalf("initial phase = %v, want Serving", tm.m.Phase())
	}
	tm.m.Step()
	if tm.m.Phase() != Rallying {
		t.Errorf("phase after first step = %v, want Rallying", tm.m.Phase())
	}
	if tm.m.Tick() != 1 {
		t.Errorf("tick = %d, want 1", tm.m.Tick())
	}
}

func TestMatchPointFlowHeadless(t *testing.T) {
	tm := newTestMatch(NewScore(2, false), true, nil)
	tm.aimAtLeftGoal()

	tm.m.Step()

	if tm.m.Score().Right != 1 {
		t.Fatalf("right score = %d, want 1", tm.m.Score().Right)
	}
	if tm.m.Phase() != PointScored {
		t.Fatalf("phase = %v, want PointScored", tm.m.Phase())
	}

	// Headless matches skip the reset delay: the next step serves.
	tm.m.Step()
	if tm.m.Phase() != Serving {
		t.Fatalf("phase = %v, want Serving", tm.m.Phase())
	}
	wantX := tm.m.Ball().X
	field := court.Playfield{Width: 800, Height: 600, HeaderHeight: 60}
	if wantX != field.CenterX()-tm.m.Ball().Size/2 {
		t.Errorf("ball x = %v, want recentered", wantX)
	}

	tm.m.Step()
	if tm.m.Phase() != Rallying {
		t.Errorf("phase = %v, want Rallying", tm.m.Phase())
	}
}

func TestMatchResetDelay(t *testing.T) {
	tm := newTestMatch(NewScore(2, false), false, nil)
	tm.aimAtLeftGoal()
	tm.m.Step()

	if tm.m.Phase() != PointScored {
		t.Fatalf("phase = %v, want PointScored", tm.m.Phase())
	}

	// Stepping before the delay elapses keeps waiting.
	tm.m.Step()
	if tm.m.Phase() != PointScored {
		t.Fatalf("phase = %v, want PointScored during delay", tm.m.Phase())
	}

	// 7 ticks at 60 FPS pass the 100ms delay.
	for i := 0; i < 7; i++ {
		tm.clock.Advance()
	}
	tm.m.Step()
	if tm.m.Phase() != Serving {
		t.Errorf("phase = %v, want Serving after delay", tm.m.Phase())
	}
}

func TestMatchGameOver(t *testing.T) {
	tm := newTestMatch(NewScore(1, false), true, nil)
	tm.aimAtLeftGoal()

	tm.m.Step()

	winner, over := tm.m.Winner()
	if !over || winner != court.SideRight {
		t.Fatalf("Winner = (%v, %v), want (right, true)", winner, over)
	}
	if tm.m.Phase() != GameOver {
		t.Fatalf("phase = %v, want GameOver", tm.m.Phase())
	}
	if tm.m.GamesCompleted() != 1 {
		t.Errorf("games completed = %d, want 1", tm.m.GamesCompleted())
	}

	// GameOver is terminal: further steps do nothing.
	tick := tm.m.Tick()
	tm.m.Step()
	if tm.m.Tick() != tick || tm.m.Phase() != GameOver {
		t.Error("Step advanced a finished game")
	}
}

func TestMatchResetGame(t *testing.T) {
	tm := newTestMatch(NewScore(1, false), true, nil)
	tm.aimAtLeftGoal()
	tm.m.Step()

	tm.m.ResetGame()

	if tm.m.Phase() != Serving {
		t.Errorf("phase = %v, want Serving", tm.m.Phase())
	}
	if tm.m.Score().Left != 0 || tm.m.Score().Right != 0 {
		t.Errorf("score = %d-%d, want 0-0", tm.m.Score().Left, tm.m.Score().Right)
	}
	if tm.m.GamesCompleted() != 1 {
		t.Errorf("games completed = %d, want preserved at 1", tm.m.GamesCompleted())
	}
}

func TestMatchRallyHitAttribution(t *testing.T) {
	tm := newTestMatch(NewScore(11, true), true, nil)
	b := tm.m.Ball()
	b.X = 68
	b.Y = tm.left.paddle.CenterY() - b.Size/2
	b.DX, b.DY = -5, 0
	b.Speed = 5

	tm.m.Step()

	if tm.m.Score().HitsLeft != 1 {
		t.Errorf("left hits = %d, want 1", tm.m.Score().HitsLeft)
	}
	if tm.m.Score().HitsRight != 0 {
		t.Errorf("right hits = %d, want 0", tm.m.Score().HitsRight)
	}
}

func TestMatchRecordsRallies(t *testing.T) {
	rec := telemetry.NewRecorder()
	tm := newTestMatch(NewScore(2, false), true, rec)
	tm.left.dy = -1 // left paddle drifts up every tick
	tm.aimAtLeftGoal()

	tm.m.Step()

	pending := rec.Pending()
	if len(pending) != 1 {
		t.Fatalf("pending rallies = %d, want 1", len(pending))
	}
	rally := pending[0]
	if rally.Winner == nil || *rally.Winner != "right" {
		t.Errorf("rally winner = %v, want right", rally.Winner)
	}
	if len(rally.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(rally.Frames))
	}
	frame := rally.Frames[0]
	if frame.LeftMovedUp == nil || !*frame.LeftMovedUp {
		t.Error("left paddle movement not recorded as up")
	}
	if frame.RightMovedUp != nil {
		t.Error("stationary right paddle recorded as moved")
	}
	if len(frame.State) != neural.NumFeatures {
		t.Errorf("frame state width = %d, want %d", len(frame.State), neural.NumFeatures)
	}
}

func TestMovedUp(t *testing.T) {
	if movedUp(100, 100) != nil {
		t.Error("no movement should yield nil")
	}
	if up := movedUp(100, 95); up == nil || !*up {
		t.Error("decreasing y should report up")
	}
	if up := movedUp(100, 105); up == nil || *up {
		t.Error("increasing y should report down")
	}
}

func TestLogicalClock(t *testing.T) {
	c := NewLogicalClock(time.Second / 60)
	if c.Now() != 0 {
		t.Errorf("initial time = %v, want 0", c.Now())
	}
	for i := 0; i < 60; i++ {
		c.Advance()
	}
	if got := c.Now(); got != 60*(time.Second/60) {
		t.Errorf("after 60 ticks: %v, want %v", got, 60*(time.Second/60))
	}
}
