package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// WaveState is the wave number and its timers, in ticks.
type WaveState struct {
	Number     int
	WaveTimer  float64
	SpawnTimer float64
}

// WaveDirector owns wave progression, spawn cadence and rarity selection.
type WaveDirector struct {
	state WaveState
	cfg   config.WavesConfig
	tiers []config.RarityConfig
	rng   *rand.Rand
}

// NewWaveDirector starts at wave 1 with both timers at zero.
func NewWaveDirector(cfg config.WavesConfig, tiers []config.RarityConfig, rng *rand.Rand) *WaveDirector {
	return &WaveDirector{
		state: WaveState{Number: 1},
		cfg:   cfg,
		tiers: tiers,
		rng:   rng,
	}
}

// State returns a copy of the wave state.
func (d *WaveDirector) State() WaveState {
	return d.state
}

// Tick advances both timers by dt. When the spawn timer reaches the current
// interval it resets and spawn is called once with a freshly drawn rarity.
// Returns whether a spawn was requested.
func (d *WaveDirector) Tick(dt float64, spawn func(components.Rarity)) bool {
	d.state.WaveTimer += dt
	d.state.SpawnTimer += dt
	if d.state.SpawnTimer < d.SpawnInterval(d.state.Number) {
		return false
	}
	d.state.SpawnTimer = 0
	spawn(d.SelectRarity(d.state.Number, d.rng.Float64()))
	return true
}

// SpawnInterval returns the ticks between spawns at the given wave:
// max(spawn_floor, spawn_base - wave*spawn_step).
func (d *WaveDirector) SpawnInterval(wave int) float64 {
	return math.Max(d.cfg.SpawnFloor, d.cfg.SpawnBase-float64(wave)*d.cfg.SpawnStep)
}

// TierProbability returns the chance of drawing a specific non-common tier at
// the given wave: min(cap, base_prob + per_wave*(wave-min_wave)) once the
// tier is unlocked, zero before.
func (d *WaveDirector) TierProbability(r components.Rarity, wave int) float64 {
	if r == components.RarityCommon {
		return 1 - d.rareTotal(wave)
	}
	t := d.tiers[r]
	if wave < t.MinWave {
		return 0
	}
	return math.Min(t.Cap, t.BaseProb+t.PerWave*float64(wave-t.MinWave))
}

// rareTotal sums the probabilities of every non-common tier.
func (d *WaveDirector) rareTotal(wave int) float64 {
	var sum float64
	for r := components.RarityRare; r < components.RarityCount; r++ {
		sum += d.TierProbability(r, wave)
	}
	return sum
}

// SelectRarity maps a uniform r in [0, 1) to a tier.
// Tiers are checked rarest first against cumulative thresholds, so each tier
// is drawn with exactly its TierProbability and common takes the remainder.
func (d *WaveDirector) SelectRarity(wave int, r float64) components.Rarity {
	var threshold float64
	for tier := components.RarityMythic; tier > components.RarityCommon; tier-- {
		threshold += d.TierProbability(tier, wave)
		if r < threshold {
			return tier
		}
	}
	return components.RarityCommon
}

// CheckAdvance moves to the next wave once the wave timer reaches the wave
// duration, resetting the timer. Returns true when the wave advanced.
func (d *WaveDirector) CheckAdvance() bool {
	if d.state.WaveTimer < d.cfg.Duration {
		return false
	}
	d.state.WaveTimer = 0
	d.state.Number++
	return true
}
