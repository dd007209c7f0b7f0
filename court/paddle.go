package court

// Paddle is an axis-aligned rectangle that moves vertically only.
// Its y coordinate is clamped into [PlayTop, PlayBottom-Height] on every
// mutation, so it can never leave the play band. The paddle is owned by
// its controller; the ball reads it only for collision tests.
type Paddle struct {
	Side   Side
	X      float64 // fixed; paddles never move horizontally
	Width  float64
	Height float64
	Speed  float64 // pixels moved per MoveUp/MoveDown call

	y     float64
	field Playfield
}

// NewPaddle creates a paddle centered vertically in the play area.
func NewPaddle(field Playfield, side Side, x, width, height, speed float64) *Paddle {
	p := &Paddle{
		Side:   side,
		X:      x,
		Width:  width,
		Height: height,
		Speed:  speed,
		field:  field,
	}
	p.Recenter()
	return p
}

// Y returns the paddle's top edge.
func (p *Paddle) Y() float64 { return p.y }

// SetY moves the paddle's top edge to y, clamped into the play band.
func (p *Paddle) SetY(y float64) {
	top := p.field.PlayTop()
	bottom := p.field.PlayBottom() - p.Height
	if y < top {
		y = top
	}
	if y > bottom {
		y = bottom
	}
	p.y = y
}

// MoveUp shifts the paddle up by one speed step. Silent no-op at the
// boundary.
func (p *Paddle) MoveUp() { p.SetY(p.y - p.Speed) }

// MoveDown shifts the paddle down by one speed step. Silent no-op at the
// boundary.
func (p *Paddle) MoveDown() { p.SetY(p.y + p.Speed) }

// Recenter moves the paddle to the vertical middle of the play area.
func (p *Paddle) Recenter() {
	p.SetY(p.field.CenterY() - p.Height/2)
}

// CenterY returns the paddle's vertical center.
func (p *Paddle) CenterY() float64 { return p.y + p.Height/2 }

// Rect returns the paddle's bounding rectangle for collision tests.
func (p *Paddle) Rect() Rect {
	return Rect{X: p.X, Y: p.y, W: p.Width, H: p.Height}
}
