package players

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/neural"
)

// Difficulty selects the computer player's reaction delay range.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// ParseDifficulty maps a CLI difficulty name to its value.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return Normal, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// Computer is the rule-based controller: it tracks the ball's vertical
// center, but only reacts after its sampled reaction delay has elapsed
// since the last reaction, and stays put inside a deadzone around the
// target to avoid jitter.
type Computer struct {
	paddle   *court.Paddle
	ball     *court.Ball
	now      Clock
	reaction time.Duration
	deadzone float64

	lastUpdate time.Duration
}

// NewComputer creates a computer player. The reaction delay is sampled
// once, uniformly from [loMs, hiMs] milliseconds.
func NewComputer(paddle *court.Paddle, ball *court.Ball, now Clock, loMs, hiMs int, deadzone float64, rng *rand.Rand) *Computer {
	reaction := time.Duration(loMs) * time.Millisecond
	if hiMs > loMs {
		reaction = time.Duration(loMs+rng.Intn(hiMs-loMs+1)) * time.Millisecond
	}
	return &Computer{
		paddle:   paddle,
		ball:     ball,
		now:      now,
		reaction: reaction,
		deadzone: deadzone,
	}
}

// Reaction returns the sampled reaction delay.
func (c *Computer) Reaction() time.Duration { return c.reaction }

// Update moves one step toward the ball's center, gated by the
// reaction delay and the deadzone.
func (c *Computer) Update(_ neural.Features) {
	t := c.now()
	if t-c.lastUpdate < c.reaction {
		return
	}
	c.lastUpdate = t

	gap := (c.ball.Y + c.ball.Size/2) - c.paddle.CenterY()
	if math.Abs(gap) <= c.deadzone {
		return
	}
	if gap < 0 {
		c.paddle.MoveUp()
	} else {
		c.paddle.MoveDown()
	}
}

// Paddle returns the controlled paddle.
func (c *Computer) Paddle() *court.Paddle { return c.paddle }
