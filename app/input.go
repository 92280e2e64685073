package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/ui"
)

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	// Window resize propagation
	a.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && a.stepsPerUpdate > 1 {
		a.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && a.stepsPerUpdate < maxStepsPerUpdate {
		a.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		a.controls.Toggle()
	}

	a.handleIntentKeys()
	a.handleOverlayKeys()
	a.handleCameraInput()
	a.handleMouse()
}

// handleIntentKeys maps keys to player intents.
func (a *App) handleIntentKeys() {
	if rl.IsKeyPressed(rl.KeyA) {
		a.game.ToggleAutoFire()
	}
	if rl.IsKeyPressed(rl.KeyU) {
		a.game.RequestUpgrade()
	}

	bet := a.game.Economy().Bet
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.game.SetBetAmount(bet + 1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.game.SetBetAmount(bet - 1)
	}
}

// handleMouse tracks the aim point and fires on left click.
// Clicks on the control bar or outside the playfield are ignored.
func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	if !a.camera.InPlayfield(mouse.X, mouse.Y) || ui.OverHUD(mouse.Y, int32(a.screenHeight)) {
		return
	}
	a.aimX, a.aimY = a.camera.ScreenToWorld(mouse.X, mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.game.FireAt(a.aimX, a.aimY)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == a.screenWidth && h == a.screenHeight {
		return
	}
	a.screenWidth = w
	a.screenHeight = h

	a.camera.Resize(w, h)
	a.statsPanel.SetPosition(int32(w)-270, 100)
	a.perfPanel.SetPosition(int32(w)-260, 330)
}

// handleCameraInput processes camera pan/zoom controls.
func (a *App) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / a.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		a.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.camera.ZoomBy(1 + wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		a.camera.Reset()
	}
}
