package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlaySettings is the mutable state the settings overlay edits.
type OverlaySettings struct {
	StepsPerUpdate int
	Paused         bool
	NewGame        bool // set for one frame when the button is pressed
}

// Overlay is the in-game settings panel.
type Overlay struct {
	Visible bool
}

// NewOverlay creates a hidden overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Toggle flips visibility.
func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// Draw renders the panel and applies widget interactions to s. No-op
// while hidden.
func (o *Overlay) Draw(screenWidth int32, s *OverlaySettings) {
	if !o.Visible {
		return
	}

	panelX := float32(screenWidth) - 230
	panelY := float32(70)
	panelW := float32(220)

	rl.DrawRectangle(int32(panelX)-10, int32(panelY)-10, int32(panelW)+20, 160, rl.Fade(rl.Black, 0.8))
	rl.DrawText("Settings", int32(panelX), int32(panelY), 20, rl.White)
	panelY += 30

	rl.DrawText("Simulation speed", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	newSteps := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelW - 50, Height: 20},
		"1", "10",
		float32(s.StepsPerUpdate), 1, 10,
	)
	rl.DrawText(fmt.Sprintf("%dx", s.StepsPerUpdate), int32(panelX+panelW-40), int32(panelY+2), 16, rl.White)
	s.StepsPerUpdate = int(newSteps + 0.5)
	if s.StepsPerUpdate < 1 {
		s.StepsPerUpdate = 1
	}
	panelY += 35

	pauseLabel := "Pause"
	if s.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, pauseLabel) {
		s.Paused = !s.Paused
	}
	if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 30}, "New Game") {
		s.NewGame = true
	}
}
