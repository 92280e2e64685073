package systems

import opensimplex "github.com/ojrac/opensimplex-go"

// SwimNoise produces the bounded vertical wobble of swimming creatures.
type SwimNoise struct {
	noise     opensimplex.Noise
	amplitude float32
	frequency float64
}

// NewSwimNoise creates a wobble source. Equal seeds give equal wobble.
func NewSwimNoise(seed int64, amplitude, frequency float64) *SwimNoise {
	return &SwimNoise{
		noise:     opensimplex.New(seed),
		amplitude: float32(amplitude),
		frequency: frequency,
	}
}

// Offset returns the y displacement per tick for a creature with the given
// phase at time t (in ticks). The result lies in [-amplitude, amplitude].
func (n *SwimNoise) Offset(phase float32, t float64) float32 {
	if n.amplitude == 0 {
		return 0
	}
	v := float32(n.noise.Eval2(float64(phase), t*n.frequency))
	return clampFloat(v, -1, 1) * n.amplitude
}
