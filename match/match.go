// Package match sequences points into games: serve, rally, score,
// reset delay, win condition. It owns the per-tick update order and is
// fully headless; the raylib host only calls Step and Draw helpers
// around it.
package match

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/players"
	"github.com/pthm-cable/pong/telemetry"
)

// Phase is the round state machine.
//
//	Serving -> Rallying -> PointScored -> (reset delay) -> Serving
//
// with GameOver terminal once the win condition holds. Headless runs
// skip the reset delay entirely.
type Phase int

const (
	Serving Phase = iota
	Rallying
	PointScored
	GameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Serving:
		return "serving"
	case Rallying:
		return "rallying"
	case PointScored:
		return "point_scored"
	default:
		return "game_over"
	}
}

// Options configures a match.
type Options struct {
	Field       court.Playfield
	Ball        *court.Ball
	Left, Right players.Player
	Encoder     *neural.StateEncoder
	Score       *Score
	Clock       players.Clock
	ResetDelay  time.Duration
	Headless    bool                // skip the reset delay, no pacing assumptions
	Recorder    *telemetry.Recorder // nil = recording disabled
}

// Match runs the point-by-point state machine over a ball, two player
// controllers and a score. All components execute in a fixed order
// within a tick; the match assumes exclusive single-threaded access.
type Match struct {
	field    court.Playfield
	ball     *court.Ball
	left     players.Player
	right    players.Player
	encoder  *neural.StateEncoder
	score    *Score
	now      players.Clock
	delay    time.Duration
	headless bool
	recorder *telemetry.Recorder

	phase          Phase
	pointEndedAt   time.Duration
	tick           int
	gamesCompleted int
	winner         court.Side
}

// New creates a match ready to serve its first point.
func New(opts Options) *Match {
	m := &Match{
		field:    opts.Field,
		ball:     opts.Ball,
		left:     opts.Left,
		right:    opts.Right,
		encoder:  opts.Encoder,
		score:    opts.Score,
		now:      opts.Clock,
		delay:    opts.ResetDelay,
		headless: opts.Headless,
		recorder: opts.Recorder,
	}
	m.beginServe()
	return m
}

// Phase returns the current phase.
func (m *Match) Phase() Phase { return m.phase }

// Tick returns the number of rally ticks stepped so far.
func (m *Match) Tick() int { return m.tick }

// GamesCompleted returns how many games have reached GameOver.
func (m *Match) GamesCompleted() int { return m.gamesCompleted }

// Score returns the live score.
func (m *Match) Score() *Score { return m.score }

// Ball returns the ball (read-only use expected).
func (m *Match) Ball() *court.Ball { return m.ball }

// LeftPaddle returns the left player's paddle.
func (m *Match) LeftPaddle() *court.Paddle { return m.left.Paddle() }

// RightPaddle returns the right player's paddle.
func (m *Match) RightPaddle() *court.Paddle { return m.right.Paddle() }

// Winner returns the winning side once the match is over.
func (m *Match) Winner() (court.Side, bool) {
	return m.winner, m.phase == GameOver
}

// beginServe re-centers everything for a new point and arms the
// recorder. The ball leaves with a fresh serve velocity.
func (m *Match) beginServe() {
	m.ball.Reset()
	m.left.Paddle().Recenter()
	m.right.Paddle().Recenter()
	m.encoder.Reset()
	m.score.ResetHits()
	if m.recorder != nil {
		m.recorder.StartPoint()
	}
	m.phase = Serving
}

// Step advances the match by one tick. In GameOver it does nothing; in
// PointScored it waits out the reset delay (or serves immediately when
// headless).
func (m *Match) Step() {
	switch m.phase {
	case GameOver:
		return
	case PointScored:
		if !m.headless && m.now()-m.pointEndedAt < m.delay {
			return
		}
		m.beginServe()
		return
	case Serving:
		m.phase = Rallying
	}

	m.tick++

	f := m.encoder.Update(m.ball.X, m.ball.Y, m.left.Paddle().Y(), m.right.Paddle().Y())

	prevLeftY := m.left.Paddle().Y()
	prevRightY := m.right.Paddle().Y()
	m.left.Update(f)
	m.right.Update(f)
	leftMoved := movedUp(prevLeftY, m.left.Paddle().Y())
	rightMoved := movedUp(prevRightY, m.right.Paddle().Y())

	event := m.ball.Move(m.left.Paddle(), m.right.Paddle())

	leftHit, rightHit := false, false
	if side, ok := m.ball.LastHit(); ok {
		m.score.TrackHit(side)
		leftHit = side == court.SideLeft
		rightHit = side == court.SideRight
	}

	if m.recorder != nil {
		m.recorder.RecordFrame(telemetry.Frame{
			State:        f,
			BallX:        m.ball.X,
			BallY:        m.ball.Y,
			LeftPaddleY:  m.left.Paddle().Y(),
			RightPaddleY: m.right.Paddle().Y(),
			LeftMovedUp:  leftMoved,
			RightMovedUp: rightMoved,
			LeftHitBall:  leftHit,
			RightHitBall: rightHit,
		})
	}

	if event == court.NoScore {
		return
	}

	scorer := court.SideLeft
	if event == court.RightScored {
		scorer = court.SideRight
	}
	m.score.AddPoint(scorer)
	slog.Info("point scored",
		"side", scorer.String(),
		"score_left", m.score.Left,
		"score_right", m.score.Right,
		"hits_left", m.score.HitsLeft,
		"hits_right", m.score.HitsRight,
	)

	if m.recorder != nil {
		m.recorder.SetWinner(scorer.String())
		m.recorder.EndPoint()
	}

	if winner, over := m.score.Winner(); over {
		m.winner = winner
		m.phase = GameOver
		m.gamesCompleted++
		slog.Info("game over",
			"winner", winner.String(),
			"score_left", m.score.Left,
			"score_right", m.score.Right,
		)
		m.notifyGameEnd(winner)
		return
	}

	m.phase = PointScored
	m.pointEndedAt = m.now()
}

// notifyGameEnd delivers the end-of-game learning signal to any AI
// controllers, with the rally hits their side logged in the deciding
// point.
func (m *Match) notifyGameEnd(winner court.Side) {
	if ai, ok := m.left.(*players.AI); ok {
		ai.OnMatchEnd(winner == court.SideLeft, m.score.Hits(court.SideLeft))
	}
	if ai, ok := m.right.(*players.AI); ok {
		ai.OnMatchEnd(winner == court.SideRight, m.score.Hits(court.SideRight))
	}
}

// ResetGame starts a fresh game after GameOver, keeping the completed
// count and the players' learned state.
func (m *Match) ResetGame() {
	m.score.Reset()
	m.beginServe()
}

// movedUp classifies a paddle's movement this tick: nil when it did
// not move, otherwise whether it went up.
func movedUp(prev, cur float64) *bool {
	if cur == prev {
		return nil
	}
	up := cur < prev
	return &up
}
