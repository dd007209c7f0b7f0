package neural

import "github.com/pthm-cable/pong/court"

// NumFeatures is the encoder's output width:
// ballX, ballY, ballDX, ballDY, leftPaddleY, rightPaddleY.
const NumFeatures = 6

// Feature vector indices.
const (
	FeatBallX = iota
	FeatBallY
	FeatBallDX
	FeatBallDY
	FeatLeftPaddleY
	FeatRightPaddleY
)

// Features is one encoded frame of game state. Positions are normalized
// to [-1,1]; deltas are normalized by the playfield dimensions.
type Features []float64

// StateEncoder converts raw positions into the perceptron's feature
// vector. It keeps exactly one frame of history (the previous ball
// position) to derive the ball's velocity; everything else is a pure
// function of the current positions.
type StateEncoder struct {
	field        court.Playfield
	ballSize     float64
	paddleHeight float64

	prevBallX float64
	prevBallY float64
	hasPrev   bool
}

// NewStateEncoder creates an encoder for the given court geometry.
func NewStateEncoder(field court.Playfield, ballSize, paddleHeight float64) *StateEncoder {
	return &StateEncoder{
		field:        field,
		ballSize:     ballSize,
		paddleHeight: paddleHeight,
	}
}

// Reset clears the velocity history. Call at each serve so the first
// frame of a rally reports zero deltas instead of the jump from the
// previous point.
func (e *StateEncoder) Reset() {
	e.hasPrev = false
}

// Update encodes the current positions. The first call after a Reset
// yields zero ball deltas.
func (e *StateEncoder) Update(ballX, ballY, leftPaddleY, rightPaddleY float64) Features {
	dx, dy := 0.0, 0.0
	if e.hasPrev {
		dx = ballX - e.prevBallX
		dy = ballY - e.prevBallY
	}
	e.prevBallX = ballX
	e.prevBallY = ballY
	e.hasPrev = true

	f := make(Features, NumFeatures)
	f[FeatBallX] = normPos(ballX, 0, e.field.Width, e.ballSize)
	f[FeatBallY] = normPos(ballY, e.field.PlayTop(), e.field.PlayHeight(), e.ballSize)
	f[FeatBallDX] = dx / e.field.Width
	f[FeatBallDY] = dy / e.field.PlayHeight()
	f[FeatLeftPaddleY] = normPos(leftPaddleY, e.field.PlayTop(), e.field.PlayHeight(), e.paddleHeight)
	f[FeatRightPaddleY] = normPos(rightPaddleY, e.field.PlayTop(), e.field.PlayHeight(), e.paddleHeight)
	return f
}

// normPos maps v in [areaMin, areaMin+areaExtent-objExtent] onto [-1,1],
// accounting for the object's own extent so the reachable extremes map
// to exactly +/-1.
func normPos(v, areaMin, areaExtent, objExtent float64) float64 {
	usable := areaExtent - objExtent
	if usable <= 0 {
		return 0
	}
	n := 2*(v-areaMin)/usable - 1
	if n < -1 {
		n = -1
	}
	if n > 1 {
		n = 1
	}
	return n
}
