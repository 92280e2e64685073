// Package app is the interactive raylib host around a game.Game.
// It maps input to player intents and draws the playfield and HUD.
package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/camera"
	"github.com/pthm-cable/reef/game"
	"github.com/pthm-cable/reef/renderer"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/ui"
)

// maxStepsPerUpdate bounds the speed-up keys.
const maxStepsPerUpdate = 10

// Options configures the host.
type Options struct {
	Title          string
	StepsPerUpdate int
}

// App drives a game from the raylib frame loop.
type App struct {
	game  *game.Game
	title string

	// Rendering
	camera     *camera.Camera
	scene      *renderer.Scene
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	statsPanel *ui.StatsPanel
	controls   *ui.ControlsPanel
	overlays   *ui.OverlayRegistry
	registry   *systems.SystemRegistry

	// Host state
	paused         bool
	stepsPerUpdate int
	frames         int64
	screenWidth    float32
	screenHeight   float32

	// Last cursor position in world space, for the cannon barrel.
	aimX, aimY float32
}

// New creates the host. The raylib window must already be open.
func New(g *game.Game, opts Options) *App {
	cfg := g.Config()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	cam := camera.New(w, h, float32(cfg.Playfield.Width), float32(cfg.Playfield.Height))
	scene := renderer.NewScene(cam, g.Seed())
	g.Subscribe(scene.HandleEvent)

	a := &App{
		game:           g,
		title:          opts.Title,
		camera:         cam,
		scene:          scene,
		hud:            ui.NewHUD(),
		perfPanel:      ui.NewPerfPanel(int32(w)-260, 330),
		statsPanel:     ui.NewStatsPanel(int32(w)-270, 100, 260, scene.Palette()),
		controls:       ui.NewControlsPanel(10, 100, 230),
		overlays:       ui.NewOverlayRegistry(),
		registry:       systems.NewSystemRegistry(),
		stepsPerUpdate: min(max(opts.StepsPerUpdate, 1), maxStepsPerUpdate),
		screenWidth:    w,
		screenHeight:   h,
	}
	// Barrel points into the playfield until the mouse moves.
	cx, cy := g.Cannon()
	a.aimX, a.aimY = cx+1, cy
	return a
}

// Update processes input and advances the simulation by one frame.
func (a *App) Update() {
	a.handleInput()

	if !a.paused {
		dt := float64(rl.GetFrameTime()) * a.game.Config().Physics.TicksPerSecond
		for range a.stepsPerUpdate {
			a.game.Tick(dt)
		}
	}

	a.scene.Update()
	a.game.RecordFrame()
	a.frames++
}

// Unload releases rendering resources and closes telemetry output.
func (a *App) Unload() {
	a.scene.Unload()
	a.game.Close()
}
