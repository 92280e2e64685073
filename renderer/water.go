package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Water texture resolution. The texture is stretched over the playfield.
const (
	waterTexW = 160
	waterTexH = 90
)

// WaterBackground renders a slowly drifting simplex noise water texture.
type WaterBackground struct {
	noise   opensimplex.Noise
	base    rl.Color
	texture rl.Texture2D
	pixels  []rl.Color

	// Texture is regenerated every refreshEvery frames.
	refreshEvery int
	frame        int
	initialized  bool
}

// NewWaterBackground creates a water background renderer.
func NewWaterBackground(seed int64, base rl.Color) *WaterBackground {
	return &WaterBackground{
		noise:        opensimplex.New(seed),
		base:         base,
		refreshEvery: 6,
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (w *WaterBackground) Init() {
	if w.initialized {
		return
	}
	img := rl.GenImageColor(waterTexW, waterTexH, w.base)
	w.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	w.pixels = make([]rl.Color, waterTexW*waterTexH)
	w.paint(0)
	rl.UpdateTexture(w.texture, w.pixels)
	rl.SetTextureFilter(w.texture, rl.FilterBilinear)
	w.initialized = true
}

// paint fills the pixel buffer with two octaves of noise sampled at time t.
func (w *WaterBackground) paint(t float64) {
	for y := 0; y < waterTexH; y++ {
		for x := 0; x < waterTexW; x++ {
			fx, fy := float64(x)*0.04, float64(y)*0.04
			n := 0.65*w.noise.Eval3(fx, fy, t) + 0.35*w.noise.Eval3(fx*2.3, fy*2.3, t*1.7)
			shade := float32(math.Max(-1, math.Min(1, n)))
			w.pixels[y*waterTexW+x] = tint(w.base, 1+0.18*shade)
		}
	}
}

// Draw renders the water texture into the given screen rectangle.
func (w *WaterBackground) Draw(time float32, dst rl.Rectangle) {
	if !w.initialized {
		w.Init()
	}

	w.frame++
	if w.frame%w.refreshEvery == 0 {
		w.paint(float64(time) * 0.15)
		rl.UpdateTexture(w.texture, w.pixels)
	}

	src := rl.Rectangle{Width: waterTexW, Height: waterTexH}
	rl.DrawTexturePro(w.texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees resources.
func (w *WaterBackground) Unload() {
	if w.initialized {
		rl.UnloadTexture(w.texture)
		w.initialized = false
	}
}

// tint scales a color's RGB channels by f.
func tint(c rl.Color, f float32) rl.Color {
	scale := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(float32(v)*f))))
	}
	return rl.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
