package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsData is the live state annotated next to each overlay toggle.
type ControlsData struct {
	Overlays    *OverlayRegistry
	Creatures   int
	Wells       int
	GridCell    float64
	WindowTicks int64 // End tick of the last telemetry window, 0 before the first flush
	TickMicros  float64
}

// cannonKeys lists the gameplay bindings shown under the overlay toggles.
var cannonKeys = [][2]string{
	{"Fire", "Click"},
	{"Auto-fire", "A"},
	{"Upgrade", "U"},
	{"Bet", "+/-"},
}

// ControlsPanel lists the overlay toggles grouped by what they inspect,
// each with a short live reading, followed by the cannon bindings.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the y below it.
func (c *ControlsPanel) Draw(data ControlsData) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	overlays := data.Overlays

	categories := overlays.Categories()
	lines := len(overlays.All()) + len(categories) + len(cannonKeys) + 1
	panelHeight := int32(lines)*lineHeight + int32(len(categories))*4 + padding*3 + lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), reading(desc.ID, data), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	y = r.DrawSectionHeader(c.x+padding, y, "Cannon")
	for _, kb := range cannonKeys {
		y = r.DrawLabelValue(c.x+padding, y, kb[0], kb[1])
	}
	return y
}

// reading returns the live value shown beside an overlay name.
func reading(id OverlayID, data ControlsData) string {
	switch id {
	case OverlayHitRadius:
		return fmt.Sprintf("%d fish", data.Creatures)
	case OverlaySpatialGrid:
		return fmt.Sprintf("%.0fpx", data.GridCell)
	case OverlayWells:
		return fmt.Sprintf("%d active", data.Wells)
	case OverlayStats:
		if data.WindowTicks == 0 {
			return "pending"
		}
		return fmt.Sprintf("@%d", data.WindowTicks)
	case OverlayPerf:
		return fmt.Sprintf("%.0fus", data.TickMicros)
	}
	return ""
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, value string, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(fmt.Sprintf("[%s] %s", desc.KeyLabel, desc.Name), x+14, y, r.Theme.FontSize, nameColor)

	if value != "" {
		w := rl.MeasureText(value, r.Theme.FontSize)
		rl.DrawText(value, x+width-w, y, r.Theme.FontSize, r.Theme.ValueColor)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case CategoryEconomy:
		return "Economy"
	case CategoryTiming:
		return "Tick Timing"
	case CategoryCollision:
		return "Collision"
	case CategoryEffects:
		return "Effects"
	default:
		return cat
	}
}
