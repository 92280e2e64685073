package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/systems"
)

// HUDHeight is the height of the bottom control bar in pixels.
const HUDHeight = 64

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Coins        int64
	Bet          int
	MaxBet       int
	Power        int
	MaxPower     int
	UpgradeCost  int64
	CanUpgrade   bool
	AutoFire     bool
	Wave         int
	WaveProgress float32 // [0, 1] through the current wave
	Creatures    int
	Projectiles  int
	Tick         int64
	Speed        int
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUDActions reports which controls were clicked this frame.
type HUDActions struct {
	Upgrade        bool
	ToggleAutoFire bool
	Bet            int // New bet, or 0 when unchanged
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD and returns the actions the player took.
func (h *HUD) Draw(data HUDData) HUDActions {
	var actions HUDActions

	// Title and status
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Wave %d | Creatures: %d | Shots: %d", data.Wave, data.Creatures, data.Projectiles),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}

	// Wave progress along the top edge
	rl.DrawRectangle(0, 0, int32(float32(data.ScreenWidth)*data.WaveProgress), 3, rl.SkyBlue)

	// Bottom control bar
	y := data.ScreenHeight - HUDHeight
	h.renderer.DrawPanel(0, y, data.ScreenWidth, HUDHeight)

	coinColor := rl.Gold
	if data.Coins < int64(data.Bet) {
		coinColor = rl.Red
	}
	rl.DrawText(fmt.Sprintf("%d", data.Coins), 16, y+14, 28, coinColor)
	rl.DrawText("coins", 16, y+44, 12, rl.Gray)

	fy := float32(y)
	x := float32(200)

	rl.DrawText("Bet", int32(x), y+8, 14, rl.LightGray)
	newBet := gui.SliderBar(
		rl.Rectangle{X: x, Y: fy + 28, Width: 160, Height: 20},
		"1", fmt.Sprintf("%d", data.MaxBet),
		float32(data.Bet), 1, float32(data.MaxBet),
	)
	if bet := int(newBet + 0.5); bet != data.Bet {
		actions.Bet = bet
	}
	rl.DrawText(fmt.Sprintf("%d", data.Bet), int32(x+40), y+8, 14, rl.White)
	x += 220

	powerColor := rl.LightGray
	if data.CanUpgrade {
		powerColor = rl.Gold
	}
	rl.DrawText(fmt.Sprintf("Power %d/%d", data.Power, data.MaxPower), int32(x), y+8, 14, powerColor)
	upgradeLabel := fmt.Sprintf("Upgrade (%d)", data.UpgradeCost)
	if data.Power >= data.MaxPower {
		upgradeLabel = "Max Power"
	}
	if gui.Button(rl.Rectangle{X: x, Y: fy + 26, Width: 140, Height: 28}, upgradeLabel) && data.Power < data.MaxPower {
		actions.Upgrade = true
	}
	x += 160

	if gui.Button(rl.Rectangle{X: x, Y: fy + 26, Width: 120, Height: 28}, toggleText(data.AutoFire, "Auto: ON", "Auto: OFF")) {
		actions.ToggleAutoFire = true
	}

	return actions
}

// DrawControls renders the control legend above the bottom bar.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-HUDHeight-20, 14, rl.Gray)
}

// OverHUD reports whether a screen point lies on the bottom control bar.
func OverHUD(y float32, screenHeight int32) bool {
	return y >= float32(screenHeight-HUDHeight)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	SystemTimes map[string]time.Duration
	Total       time.Duration
	Registry    *systems.SystemRegistry
}

// PerfPanel renders the tick phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders phases in execution order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-8, y-8, 260, 40+int32(len(data.Registry.IDs()))*14)

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, id := range data.Registry.IDs() {
		avg := data.SystemTimes[id]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %6s %5.1f%%", data.Registry.GetName(id), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
