package players

import (
	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/neural"
)

// Human moves its paddle one speed step per tick while a bound key is
// held. Up wins when both keys are down. No state between ticks.
type Human struct {
	paddle  *court.Paddle
	keys    KeyState
	upKey   int32
	downKey int32
}

// NewHuman binds a paddle to two keys on the given key source.
func NewHuman(paddle *court.Paddle, keys KeyState, upKey, downKey int32) *Human {
	return &Human{paddle: paddle, keys: keys, upKey: upKey, downKey: downKey}
}

// Update applies the currently held key, if any.
func (h *Human) Update(_ neural.Features) {
	if h.keys.IsDown(h.upKey) {
		h.paddle.MoveUp()
	} else if h.keys.IsDown(h.downKey) {
		h.paddle.MoveDown()
	}
}

// Paddle returns the controlled paddle.
func (h *Human) Paddle() *court.Paddle { return h.paddle }
