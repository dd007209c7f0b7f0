// Package court holds the playfield geometry and the ball/paddle physics.
// Everything in this package is raylib-free and steps synchronously, one
// tick at a time.
package court

// Side identifies a player's half of the court.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns the lowercase side name.
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Rect is an axis-aligned rectangle in playfield coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rectangles overlap. Touching edges count
// as overlap, so a ball repositioned flush against a paddle still
// registers contact on the hit tick.
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.X+o.W && r.X+r.W >= o.X &&
		r.Y <= o.Y+o.H && r.Y+r.H >= o.Y
}

// Playfield is the immutable court geometry. The header band at the top
// is reserved for the score display; play happens in
// [0, Width) x [HeaderHeight, Height).
type Playfield struct {
	Width        float64
	Height       float64
	HeaderHeight float64
}

// PlayTop returns the top edge of the play area.
func (p Playfield) PlayTop() float64 { return p.HeaderHeight }

// PlayBottom returns the bottom edge of the play area.
func (p Playfield) PlayBottom() float64 { return p.Height }

// PlayHeight returns the height of the play area.
func (p Playfield) PlayHeight() float64 { return p.Height - p.HeaderHeight }

// CenterX returns the horizontal center of the playfield.
func (p Playfield) CenterX() float64 { return p.Width / 2 }

// CenterY returns the vertical center of the play area.
func (p Playfield) CenterY() float64 { return p.HeaderHeight + p.PlayHeight()/2 }
