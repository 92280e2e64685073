// Package renderer draws the reef playfield with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/camera"
	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/events"
	"github.com/pthm-cable/reef/systems"
)

// Palette maps each rarity tier to its body color.
type Palette [components.RarityCount]rl.Color

// DefaultPalette returns the tier colors, brightening with rarity.
func DefaultPalette() Palette {
	return Palette{
		components.RarityCommon:    {R: 150, G: 175, B: 190, A: 255},
		components.RarityRare:      {R: 90, G: 200, B: 120, A: 255},
		components.RarityEpic:      {R: 170, G: 100, B: 230, A: 255},
		components.RarityLegendary: {R: 245, G: 195, B: 60, A: 255},
		components.RarityMythic:    {R: 240, G: 80, B: 110, A: 255},
	}
}

var (
	waterColor      = rl.Color{R: 18, G: 60, B: 92, A: 255}
	projectileColor = rl.Color{R: 255, G: 240, B: 170, A: 255}
	cannonColor     = rl.Color{R: 200, G: 205, B: 215, A: 255}
	slowedColor     = rl.Color{R: 140, G: 220, B: 255, A: 200}
	healthBg        = rl.Color{R: 40, G: 40, B: 40, A: 200}
	healthFill      = rl.Color{R: 100, G: 220, B: 100, A: 230}
)

// effectColors maps abilities to the color of their trigger ring.
var effectColors = map[components.Ability]rl.Color{
	components.AbilityArea:         {R: 255, G: 150, B: 50, A: 200},
	components.AbilityChain:        {R: 120, G: 190, B: 255, A: 220},
	components.AbilityCrowdControl: {R: 160, G: 235, B: 255, A: 180},
	components.AbilityPull:         {R: 190, G: 110, B: 255, A: 160},
}

// Scene draws the playfield contents through a camera. It listens to the
// event bus for kills and ability triggers to animate them.
type Scene struct {
	cam       *camera.Camera
	palette   Palette
	water     *WaterBackground
	particles *ParticleSystem
	rings     []ring
}

// NewScene creates a scene bound to cam.
func NewScene(cam *camera.Camera, seed int64) *Scene {
	return &Scene{
		cam:       cam,
		palette:   DefaultPalette(),
		water:     NewWaterBackground(seed, waterColor),
		particles: NewParticleSystem(2048, seed),
	}
}

// Palette returns the tier colors in use.
func (s *Scene) Palette() Palette {
	return s.palette
}

// HandleEvent animates simulation events. Subscribe it to the game's bus.
func (s *Scene) HandleEvent(e events.Event) {
	switch ev := e.(type) {
	case events.CreatureRemoved:
		if ev.Reason != events.ReasonDeath {
			return
		}
		n := 8 + 6*int(ev.Rarity)
		s.particles.Burst(ev.X, ev.Y, n, 3+float32(ev.Rarity), s.palette[ev.Rarity])

	case events.EffectTriggered:
		color, ok := effectColors[ev.Type]
		if !ok {
			return
		}
		r := ring{x: ev.X, y: ev.Y, radius: ev.Radius, life: 24, color: color}
		switch ev.Type {
		case components.AbilityArea:
			r.filled = true
		case components.AbilityCrowdControl:
			r.radius = 40
		case components.AbilityPull:
			// Pull wells persist for their duration.
			r.life = max(ev.Duration, 24)
		}
		r.maxLife = r.life
		s.rings = append(s.rings, r)
	}
}

// Update ages frame-timed animations.
func (s *Scene) Update() {
	s.particles.Update()
	alive := s.rings[:0]
	for _, r := range s.rings {
		r.life--
		if r.life > 0 {
			alive = append(alive, r)
		}
	}
	s.rings = alive
}

// DrawBackground fills the playfield area with animated water.
func (s *Scene) DrawBackground(time float32) {
	x0, y0 := s.cam.WorldToScreen(0, 0)
	x1, y1 := s.cam.WorldToScreen(s.cam.WorldW, s.cam.WorldH)
	s.water.Draw(time, rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0})
}

// DrawCreature draws one creature as a fish facing its swim direction (left).
// radius is the creature's hit radius in world units; the body fills it.
func (s *Scene) DrawCreature(c systems.CreatureView, radius float32) {
	if !s.cam.IsVisible(c.X, c.Y, radius*1.5) {
		return
	}
	sx, sy := s.cam.WorldToScreen(c.X, c.Y)
	r := s.cam.Scale(radius)
	color := s.palette[c.Rarity]

	// Tail
	rl.DrawTriangle(
		rl.Vector2{X: sx + r*0.7, Y: sy},
		rl.Vector2{X: sx + r*1.5, Y: sy + r*0.6},
		rl.Vector2{X: sx + r*1.5, Y: sy - r*0.6},
		color,
	)
	rl.DrawEllipse(int32(sx), int32(sy), r, r*0.6, color)

	// Eye
	rl.DrawCircleV(rl.Vector2{X: sx - r*0.5, Y: sy - r*0.15}, max(r*0.1, 1), rl.Black)

	if c.Slowed {
		rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, r*1.2, slowedColor)
	}

	if c.Health < c.MaxHealth {
		w := r * 1.6
		frac := float32(c.Health) / float32(c.MaxHealth)
		bar := rl.Rectangle{X: sx - w/2, Y: sy - r - 8, Width: w, Height: 4}
		rl.DrawRectangleRec(bar, healthBg)
		bar.Width = w * frac
		rl.DrawRectangleRec(bar, healthFill)
	}
}

// DrawProjectile draws a shot, larger for higher power.
func (s *Scene) DrawProjectile(p systems.ProjectileView) {
	sx, sy := s.cam.WorldToScreen(p.X, p.Y)
	r := s.cam.Scale(2 + float32(p.Power)*0.6)
	tailX, tailY := s.cam.WorldToScreen(p.X-p.DirX*r*3, p.Y-p.DirY*r*3)
	rl.DrawLineEx(rl.Vector2{X: tailX, Y: tailY}, rl.Vector2{X: sx, Y: sy}, r, fade(projectileColor, 0.4))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, projectileColor)
}

// DrawCannon draws the cannon at (x, y) with its barrel aimed at (aimX, aimY).
func (s *Scene) DrawCannon(x, y, aimX, aimY float32, power int) {
	sx, sy := s.cam.WorldToScreen(x, y)
	base := s.cam.Scale(22)

	dx, dy := aimX-x, aimY-y
	d := float32(math.Hypot(float64(dx), float64(dy)))
	if d > 0 {
		length := s.cam.Scale(34)
		end := rl.Vector2{X: sx + dx/d*length, Y: sy + dy/d*length}
		rl.DrawLineEx(rl.Vector2{X: sx, Y: sy}, end, s.cam.Scale(8+float32(power)), cannonColor)
	}
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, base, cannonColor)
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, base, rl.DarkGray)
}

// DrawEffects draws ability rings and kill particles.
func (s *Scene) DrawEffects() {
	for _, r := range s.rings {
		t := float32(r.life) / float32(r.maxLife)
		sx, sy := s.cam.WorldToScreen(r.x, r.y)
		center := rl.Vector2{X: sx, Y: sy}
		radius := s.cam.Scale(r.radius)
		color := fade(r.color, t)

		if r.filled {
			// Expands to full radius over the first half of its life.
			grow := min(1, 2*(1-t))
			rl.DrawCircleV(center, radius*grow, fade(r.color, t*0.35))
			rl.DrawCircleLinesV(center, radius*grow, color)
			continue
		}
		rl.DrawCircleLinesV(center, radius, color)
		rl.DrawCircleLinesV(center, radius*t, fade(r.color, t*0.5))
	}
	s.particles.Draw(s.cam.WorldToScreen, s.cam.Scale(1))
}

// Unload frees GPU resources.
func (s *Scene) Unload() {
	s.water.Unload()
}

// fade scales a color's alpha by f in [0, 1].
func fade(c rl.Color, f float32) rl.Color {
	c.A = uint8(float32(c.A) * max(0, min(1, f)))
	return c
}
