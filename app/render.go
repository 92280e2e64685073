package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/ui"
)

const controlsLegend = "Click: Fire | A: Auto | U: Upgrade | +/-: Bet | Space: Pause | </>: Speed | Tab: Overlays | Wheel/Arrows: Camera"

// Draw renders one frame and applies any HUD button presses.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.scene.DrawBackground(float32(a.frames) / 60)

	a.game.ForEachCreature(func(c systems.CreatureView) bool {
		a.scene.DrawCreature(c, a.game.HitRadius(c))
		return true
	})
	a.game.ForEachProjectile(func(p systems.ProjectileView) bool {
		a.scene.DrawProjectile(p)
		return true
	})

	cx, cy := a.game.Cannon()
	econ := a.game.Economy()
	a.scene.DrawCannon(cx, cy, a.aimX, a.aimY, econ.Power)
	a.scene.DrawEffects()

	a.drawActiveOverlays()

	actions := a.hud.Draw(a.hudData())
	a.applyHUDActions(actions)

	sw, sh := int32(a.screenWidth), int32(a.screenHeight)
	a.hud.DrawControls(sw, sh, controlsLegend)
	a.controls.Draw(ui.ControlsData{
		Overlays:    a.overlays,
		Creatures:   a.game.CreatureCount(),
		Wells:       len(a.game.Wells()),
		GridCell:    a.game.Config().Physics.GridCellSize,
		WindowTicks: a.game.LastStats().WindowEndTick,
		TickMicros:  float64(a.game.PerfStats().AvgTickDuration.Microseconds()),
	})

	rl.EndDrawing()
}

func (a *App) hudData() ui.HUDData {
	cfg := a.game.Config()
	econ := a.game.Economy()
	wave := a.game.Wave()

	progress := float32(0)
	if cfg.Waves.Duration > 0 {
		progress = float32(min(1, wave.WaveTimer/cfg.Waves.Duration))
	}

	return ui.HUDData{
		Title:        a.title,
		Coins:        econ.Coins,
		Bet:          econ.Bet,
		MaxBet:       cfg.Economy.MaxBet,
		Power:        econ.Power,
		MaxPower:     cfg.Economy.MaxPower,
		UpgradeCost:  a.game.UpgradeCost(),
		CanUpgrade:   a.game.CanUpgrade(),
		AutoFire:     econ.AutoFire,
		Wave:         wave.Number,
		WaveProgress: progress,
		Creatures:    a.game.CreatureCount(),
		Projectiles:  a.game.ProjectileCount(),
		Tick:         a.game.CurrentTick(),
		Speed:        a.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       a.paused,
		ScreenWidth:  int32(a.screenWidth),
		ScreenHeight: int32(a.screenHeight),
	}
}

func (a *App) applyHUDActions(actions ui.HUDActions) {
	if actions.Upgrade {
		a.game.RequestUpgrade()
	}
	if actions.ToggleAutoFire {
		a.game.ToggleAutoFire()
	}
	if actions.Bet != 0 {
		a.game.SetBetAmount(actions.Bet)
	}
}
