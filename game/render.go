package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/ui"
)

const controlsLegend = "Space pause | , . speed | Tab settings | Enter new game | R restart | P1 W/S | P2 Up/Down"

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	screenW := int32(g.cfg.Screen.Width)
	screenH := int32(g.cfg.Screen.Height)
	headerH := int32(g.cfg.Screen.HeaderHeight)

	g.hud.DrawDivider(screenW, headerH, screenH)

	drawRect(g.m.LeftPaddle().Rect())
	drawRect(g.m.RightPaddle().Rect())
	drawRect(g.m.Ball().Rect())

	winner, over := g.m.Winner()
	g.hud.Draw(ui.HUDData{
		ScoreLeft:    g.m.Score().Left,
		ScoreRight:   g.m.Score().Right,
		Tick:         g.m.Tick(),
		Speed:        g.settings.StepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.settings.Paused,
		GameOver:     over,
		Winner:       winnerLabel(winner, over),
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		HeaderHeight: headerH,
	})
	g.hud.DrawControls(screenH, controlsLegend)

	g.overlay.Draw(screenW, &g.settings)

	rl.EndDrawing()
}

func drawRect(r court.Rect) {
	rl.DrawRectangle(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), rl.White)
}

func winnerLabel(side court.Side, over bool) string {
	if !over {
		return ""
	}
	if side == court.SideLeft {
		return "Left"
	}
	return "Right"
}
