// Package ui renders the HUD and the raygui settings overlay.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the HUD needs for one frame.
type HUDData struct {
	ScoreLeft    int
	ScoreRight   int
	Tick         int
	Speed        int
	FPS          int32
	Paused       bool
	GameOver     bool
	Winner       string
	ScreenWidth  int32
	ScreenHeight int32
	HeaderHeight int32
}

// HUD renders scores in the header band plus the status line.
type HUD struct{}

// NewHUD creates a HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the header band, scores, status line and, when the game
// is over, the winner banner.
func (h *HUD) Draw(data HUDData) {
	// Header band holding the scores, separated from the play area.
	rl.DrawLine(0, data.HeaderHeight, data.ScreenWidth, data.HeaderHeight, rl.DarkGray)

	scoreSize := int32(40)
	left := fmt.Sprintf("%d", data.ScoreLeft)
	right := fmt.Sprintf("%d", data.ScoreRight)
	rl.DrawText(left, data.ScreenWidth/4-rl.MeasureText(left, scoreSize)/2, 10, scoreSize, rl.White)
	rl.DrawText(right, 3*data.ScreenWidth/4-rl.MeasureText(right, scoreSize)/2, 10, scoreSize, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, data.ScreenHeight-45, 14, rl.Gray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", data.ScreenWidth/2-rl.MeasureText("PAUSED", 20)/2,
			data.HeaderHeight+10, 20, rl.Yellow)
	}

	if data.GameOver {
		banner := fmt.Sprintf("%s wins! Press Enter for a new game", data.Winner)
		size := int32(28)
		rl.DrawText(banner,
			data.ScreenWidth/2-rl.MeasureText(banner, size)/2,
			data.ScreenHeight/2-size/2, size, rl.Green)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// DrawDivider renders the dashed center line in the play area.
func (h *HUD) DrawDivider(screenWidth, headerHeight, screenHeight int32) {
	x := screenWidth / 2
	for y := headerHeight + 10; y < screenHeight; y += 30 {
		rl.DrawRectangle(x-2, y, 4, 15, rl.Gray)
	}
}
