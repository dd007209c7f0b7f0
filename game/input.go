package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes the control keys. Paddle keys are read by the
// Human players themselves through the KeyState capability.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.settings.Paused = !g.settings.Paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.settings.StepsPerUpdate > 1 {
		g.settings.StepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.settings.StepsPerUpdate < 10 {
		g.settings.StepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.overlay.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyEnter) {
		g.settings.NewGame = true
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.m.ResetGame()
	}
}
