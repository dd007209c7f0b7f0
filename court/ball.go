package court

import (
	"math"
	"math/rand"
)

// maxBounceAngle is the steepest exit angle off a paddle edge (and the
// half-width of the serve cone).
const maxBounceAngle = 45 * math.Pi / 180

// ScoreEvent is the outcome of one ball movement step.
type ScoreEvent int

const (
	NoScore ScoreEvent = iota
	LeftScored
	RightScored
)

// Ball is the game ball. Velocity is kept normalized under the L1
// (taxicab) norm: |DX| + |DY| == Speed after every update. L1 keeps the
// ball's horizontal progress bounded regardless of exit angle, which
// makes collision timing predictable.
type Ball struct {
	X, Y   float64 // top-left of the bounding square
	Size   float64
	DX, DY float64
	Speed  float64

	BaseSpeed      float64
	MaxSpeed       float64
	SpeedIncrement float64

	field      Playfield
	rng        *rand.Rand
	serveRight bool
	lastHit    Side
	hasLastHit bool
}

// NewBall creates a ball and serves it from the center. The rng drives
// serve angles; seed it for deterministic runs.
func NewBall(field Playfield, size, baseSpeed, maxSpeed, speedIncrement float64, rng *rand.Rand) *Ball {
	b := &Ball{
		Size:           size,
		BaseSpeed:      baseSpeed,
		MaxSpeed:       maxSpeed,
		SpeedIncrement: speedIncrement,
		field:          field,
		rng:            rng,
		serveRight:     rng.Intn(2) == 0,
	}
	b.Reset()
	return b
}

// Rect returns the ball's bounding rectangle.
func (b *Ball) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

// LastHit returns the side whose paddle the ball struck during the most
// recent Move, if any.
func (b *Ball) LastHit() (Side, bool) {
	return b.lastHit, b.hasLastHit
}

// Reset re-centers the ball and serves it into a random cone of
// ±maxBounceAngle around the horizontal. Serve direction alternates
// between points. Speed drops back to BaseSpeed.
func (b *Ball) Reset() {
	b.X = b.field.CenterX() - b.Size/2
	b.Y = b.field.CenterY() - b.Size/2

	theta := (b.rng.Float64()*2 - 1) * maxBounceAngle
	dirX := -1.0
	if b.serveRight {
		dirX = 1.0
	}
	b.serveRight = !b.serveRight

	b.Speed = b.BaseSpeed
	b.setVelocity(dirX, theta)
}

// setVelocity points the ball along angle theta (measured from the
// horizontal, positive = downward) with horizontal sign dirX, scaled so
// |DX|+|DY| == Speed exactly.
func (b *Ball) setVelocity(dirX, theta float64) {
	c := math.Abs(math.Cos(theta))
	s := math.Sin(theta)
	denom := c + math.Abs(s)
	if denom == 0 {
		// Degenerate zero vector; leave velocity untouched.
		return
	}
	b.DX = dirX * b.Speed * c / denom
	b.DY = b.Speed * s / denom
}

// Move advances the ball one tick and resolves collisions:
//
//  1. integrate position
//  2. vertical walls: clamp and flip DY's sign
//  3. scoring: a ball crossing a goal line is clamped there and the
//     event returned; no paddle test happens on a scoring tick
//  4. paddles: only the paddle the ball is moving toward is tested; on
//     hit the ball is repositioned flush against the facing edge, the
//     speed ramps (capped), and the exit angle follows the hit position
//     (paddle top edge = -45 deg, bottom edge = +45 deg)
//
// Returns NoScore when play continues.
func (b *Ball) Move(left, right *Paddle) ScoreEvent {
	b.hasLastHit = false

	b.X += b.DX
	b.Y += b.DY

	// Wall bounce by sign-flip: exact and jitter-free.
	if b.Y <= b.field.PlayTop() {
		b.Y = b.field.PlayTop()
		b.DY = math.Abs(b.DY)
	}
	if b.Y+b.Size >= b.field.PlayBottom() {
		b.Y = b.field.PlayBottom() - b.Size
		b.DY = -math.Abs(b.DY)
	}

	if b.X <= 0 {
		b.X = 0
		return RightScored
	}
	if b.X+b.Size >= b.field.Width {
		b.X = b.field.Width - b.Size
		return LeftScored
	}

	// Test the paddle the ball travels toward first; one hit per tick.
	order := [2]*Paddle{left, right}
	if b.DX > 0 {
		order = [2]*Paddle{right, left}
	}
	for _, p := range order {
		if !b.Rect().Overlaps(p.Rect()) {
			continue
		}
		b.bounceOff(p)
		break
	}

	return NoScore
}

// bounceOff reflects the ball off a paddle. The exit angle scales
// linearly with where the ball's center met the paddle: -1 at the top
// edge, +1 at the bottom.
func (b *Ball) bounceOff(p *Paddle) {
	rel := (b.Y + b.Size/2 - p.Y()) / p.Height * 2 - 1
	if rel < -1 {
		rel = -1
	}
	if rel > 1 {
		rel = 1
	}

	// Reposition flush against the facing edge so the ball can't
	// tunnel through or stick inside the paddle.
	dirX := -1.0
	if p.Side == SideLeft {
		dirX = 1.0
		b.X = p.X + p.Width
	} else {
		b.X = p.X - b.Size
	}

	b.Speed = math.Min(b.Speed+b.SpeedIncrement, b.MaxSpeed)
	b.setVelocity(dirX, rel*maxBounceAngle)

	b.lastHit = p.Side
	b.hasLastHit = true
}
