package systems

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/pthm-cable/reef/components"
)

func TestSpawnInterval(t *testing.T) {
	d := newTestSim(t).waves
	tests := []struct {
		wave int
		want float64
	}{
		{1, 57},
		{5, 45},
		{9, 33},
		{10, 30},
		{50, 30},
	}
	for _, tt := range tests {
		if got := d.SpawnInterval(tt.wave); got != tt.want {
			t.Errorf("SpawnInterval(%d) = %v, want %v", tt.wave, got, tt.want)
		}
	}
}

func TestSelectRarity(t *testing.T) {
	d := newTestSim(t).waves
	tests := []struct {
		name string
		wave int
		r    float64
		want components.Rarity
	}{
		{"rare at wave one", 1, 0.0, components.RarityRare},
		{"rare boundary", 1, 0.1499, components.RarityRare},
		{"common above rare", 1, 0.15, components.RarityCommon},
		{"epic locked at wave two", 2, 0.0, components.RarityRare},
		{"epic unlocked at wave three", 3, 0.0, components.RarityEpic},
		{"mythic locked at wave seven", 7, 0.0, components.RarityLegendary},
		{"mythic at wave eight", 8, 0.004, components.RarityMythic},
		{"legendary after mythic", 8, 0.006, components.RarityLegendary},
		{"top of range is common", 100, 0.9999, components.RarityCommon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.SelectRarity(tt.wave, tt.r); got != tt.want {
				t.Errorf("SelectRarity(%d, %v) = %v, want %v", tt.wave, tt.r, got, tt.want)
			}
		})
	}
}

// TestRarityCurveProperties checks the default table at arbitrary waves:
// probabilities never shrink as waves advance, a rarer tier never beats the
// tier below it, and the common remainder stays positive.
func TestRarityCurveProperties(t *testing.T) {
	d := newTestSim(t).waves
	rapid.Check(t, func(t *rapid.T) {
		wave := rapid.IntRange(1, 500).Draw(t, "wave")

		var sum float64
		for r := components.RarityRare; r < components.RarityCount; r++ {
			p := d.TierProbability(r, wave)
			if p < 0 {
				t.Fatalf("%v at wave %d: negative probability %v", r, wave, p)
			}
			if next := d.TierProbability(r, wave+1); next < p {
				t.Fatalf("%v shrinks from %v to %v at wave %d", r, p, next, wave)
			}
			if r > components.RarityRare {
				below := d.TierProbability(r-1, wave)
				if p > 0 && p >= below {
					t.Fatalf("%v (%v) not rarer than %v (%v) at wave %d", r, p, r-1, below, wave)
				}
			}
			sum += p
		}
		if common := d.TierProbability(components.RarityCommon, wave); common <= 0 || sum+common > 1+1e-9 {
			t.Fatalf("wave %d: rare total %v, common %v", wave, sum, common)
		}

		r := rapid.Float64Range(0, 0.999999).Draw(t, "r")
		got := d.SelectRarity(wave, r)
		if got != components.RarityCommon && d.TierProbability(got, wave) == 0 {
			t.Fatalf("selected locked tier %v at wave %d", got, wave)
		}
	})
}

func TestWaveAdvancesEvery600Ticks(t *testing.T) {
	d := newTestSim(t).waves
	advances := 0
	for tick := 1; tick <= 1800; tick++ {
		before := d.State().Number
		d.Tick(1, func(components.Rarity) {})
		if d.CheckAdvance() {
			advances++
			if tick%600 != 0 {
				t.Fatalf("wave advanced at tick %d", tick)
			}
			if d.State().Number != before+1 {
				t.Fatalf("wave jumped from %d to %d", before, d.State().Number)
			}
		}
	}
	if advances != 3 || d.State().Number != 4 {
		t.Errorf("advances = %d, wave = %d, want 3 and 4", advances, d.State().Number)
	}
}

func TestWaveTickSpawnCadence(t *testing.T) {
	d := newTestSim(t).waves
	spawns := 0
	for i := 0; i < 570; i++ {
		d.Tick(1, func(components.Rarity) { spawns++ })
	}
	// Wave 1 spawns every 57 ticks.
	if spawns != 10 {
		t.Errorf("spawns = %d, want 10", spawns)
	}
}
