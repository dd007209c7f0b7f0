// Package players holds the paddle controllers: keyboard-driven human,
// rule-based computer, and the trainable perceptron AI. Controllers are
// polymorphic over a single per-tick Update capability; the host
// injects the keyboard and clock so everything here stays testable
// without a window.
package players

import (
	"time"

	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/neural"
)

// Player is a paddle controller. Update runs once per tick, after the
// frame's features are encoded and before the ball moves.
type Player interface {
	// Update reads whatever state the controller needs and applies a
	// movement intent to its paddle. Controllers that don't use the
	// feature vector ignore it.
	Update(f neural.Features)

	// Paddle returns the paddle this controller owns.
	Paddle() *court.Paddle
}

// KeyState reports whether a logical key is currently held down.
// Implemented by the raylib host; tests substitute a map.
type KeyState interface {
	IsDown(key int32) bool
}

// Clock returns monotonic time since an arbitrary start. Reaction
// delays compare against it; it never goes backwards.
type Clock func() time.Duration
