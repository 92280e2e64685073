package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/ui"
)

var (
	hitRadiusColor = rl.Color{R: 255, G: 80, B: 80, A: 140}
	gridColor      = rl.Color{R: 255, G: 255, B: 255, A: 25}
	wellColor      = rl.Color{R: 190, G: 110, B: 255, A: 160}
)

// handleOverlayKeys checks for overlay toggle key presses.
func (a *App) handleOverlayKeys() {
	for _, desc := range a.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			a.overlays.Toggle(desc.ID)
		}
	}
}

// drawActiveOverlays renders all currently enabled overlays.
func (a *App) drawActiveOverlays() {
	for _, id := range a.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayHitRadius:
			a.drawHitRadii()
		case ui.OverlaySpatialGrid:
			a.drawSpatialGrid()
		case ui.OverlayWells:
			a.drawWells()
		case ui.OverlayStats:
			a.statsPanel.Draw(a.game.LastStats())
		case ui.OverlayPerf:
			a.drawPerfPanel()
		}
	}
}

// drawHitRadii outlines the collision circle of every creature.
func (a *App) drawHitRadii() {
	a.game.ForEachCreature(func(c systems.CreatureView) bool {
		sx, sy := a.camera.WorldToScreen(c.X, c.Y)
		rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, a.camera.Scale(a.game.HitRadius(c)), hitRadiusColor)
		return true
	})
}

// drawSpatialGrid draws the broad-phase cell boundaries.
func (a *App) drawSpatialGrid() {
	cfg := a.game.Config()
	cell := float32(cfg.Physics.GridCellSize)
	w, h := float32(cfg.Playfield.Width), float32(cfg.Playfield.Height)
	if cell <= 0 {
		return
	}

	for x := float32(0); x <= w; x += cell {
		x0, y0 := a.camera.WorldToScreen(x, 0)
		x1, y1 := a.camera.WorldToScreen(x, h)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, gridColor)
	}
	for y := float32(0); y <= h; y += cell {
		x0, y0 := a.camera.WorldToScreen(0, y)
		x1, y1 := a.camera.WorldToScreen(w, y)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, gridColor)
	}
}

// drawWells outlines each active pull well and its dead zone.
func (a *App) drawWells() {
	for _, w := range a.game.Wells() {
		sx, sy := a.camera.WorldToScreen(w.X, w.Y)
		center := rl.Vector2{X: sx, Y: sy}
		rl.DrawCircleLinesV(center, a.camera.Scale(w.Radius), wellColor)
		rl.DrawCircleLinesV(center, a.camera.Scale(w.DeadZone), rl.Red)
	}
}

// drawPerfPanel shows per-phase tick timing.
func (a *App) drawPerfPanel() {
	stats := a.game.PerfStats()
	a.perfPanel.Draw(ui.PerfPanelData{
		SystemTimes: stats.PhaseAvg,
		Total:       stats.AvgTickDuration,
		Registry:    a.registry,
	})
}
