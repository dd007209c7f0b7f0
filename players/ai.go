package players

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/telemetry"
)

// Reward schedule. Contact shaping fires every tick the paddle touches
// the ball; the win rewards fire once per game, scaled by whether the
// winning side actually rallied.
const (
	ContactReward = 0.1
	WinReward     = 1.0
	BigWinReward  = 10.0
	minRallyHits  = 2
)

// AI is the perceptron-driven controller. It decides up/down from the
// encoded feature vector, learns online from contact and win rewards,
// and persists its model through an injected ModelStore.
type AI struct {
	paddle *court.Paddle
	ball   *court.Ball
	brain  *neural.Perceptron
	store  neural.ModelStore
}

// NewAI creates an AI player, restoring a persisted model from store if
// one exists. A corrupt model logs a warning and starts fresh; it is
// never fatal. store may be nil (ephemeral model, used in tests).
func NewAI(paddle *court.Paddle, ball *court.Ball, hiddenNodes int, learningRate float64, store neural.ModelStore, rng *rand.Rand) *AI {
	brain := neural.NewPerceptron(hiddenNodes, learningRate, rng)

	if store != nil {
		model, err := store.Load()
		switch {
		case err != nil:
			slog.Warn("persisted model unreadable, starting fresh", "side", paddle.Side, "error", err)
		case model != nil:
			brain.Restore(model)
			slog.Info("restored model",
				"side", paddle.Side,
				"games_played", brain.GamesPlayed,
				"total_reward", brain.TotalReward,
			)
		}
	}

	return &AI{paddle: paddle, ball: ball, brain: brain, store: store}
}

// Update runs the forward pass, moves the paddle, and applies the
// contact shaping reward when the move put the paddle on the ball.
func (a *AI) Update(f neural.Features) {
	moveUp, _ := a.brain.Decide(f)
	if moveUp {
		a.paddle.MoveUp()
	} else {
		a.paddle.MoveDown()
	}

	if a.paddle.Rect().Overlaps(a.ball.Rect()) {
		a.brain.Learn(ContactReward)
	}
}

// Paddle returns the controlled paddle.
func (a *AI) Paddle() *court.Paddle { return a.paddle }

// Brain exposes the underlying perceptron.
func (a *AI) Brain() *neural.Perceptron { return a.brain }

// OnMatchEnd applies the end-of-game reward. A win with a real rally
// (>= 2 hits in the deciding point) earns the big reward. A loss earns
// nothing - only the games-played counter moves.
func (a *AI) OnMatchEnd(won bool, rallyHits int) {
	a.brain.GamesPlayed++
	if !won {
		return
	}
	if rallyHits >= minRallyHits {
		a.brain.Learn(BigWinReward)
	} else {
		a.brain.Learn(WinReward)
	}
}

// LearnFromRallies replays recorded rallies as a crude imitation pass:
// wherever a recorded side hit the ball and moved, the recorded
// direction is substituted as the decision and rewarded. Rallies
// without a real exchange (< 2 total hits) are ignored, as are frames
// whose state vector doesn't match the encoder's shape. Returns the
// number of frames learned from.
func (a *AI) LearnFromRallies(rallies []telemetry.Rally) int {
	trained := 0
	for _, rally := range rallies {
		if rally.LeftHits+rally.RightHits < minRallyHits {
			continue
		}
		for _, frame := range rally.Frames {
			if len(frame.State) != neural.NumFeatures {
				continue
			}
			if frame.LeftHitBall && frame.LeftMovedUp != nil {
				a.imitate(frame.State, *frame.LeftMovedUp)
				trained++
			}
			if frame.RightHitBall && frame.RightMovedUp != nil {
				a.imitate(frame.State, *frame.RightMovedUp)
				trained++
			}
		}
	}
	return trained
}

func (a *AI) imitate(state []float64, movedUp bool) {
	prob := 0.0
	if movedUp {
		prob = 1.0
	}
	a.brain.SetLast(neural.Features(state), prob)
	a.brain.Learn(ContactReward)
}

// Save persists the current model. No-op without a store.
func (a *AI) Save() error {
	if a.store == nil {
		return nil
	}
	return a.store.Save(a.brain.Snapshot())
}
