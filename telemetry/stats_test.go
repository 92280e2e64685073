package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/reef/components"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty slice", []float64{}, Summary{}},
		{"single element", []float64{5}, Summary{N: 1, Mean: 5, P10: 5, P50: 5, P90: 5}},
		{"one to ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Summary{N: 10, Mean: 5.5, Std: 3.0277, P10: 1, P50: 5, P90: 9}},
		{"constant", []float64{2, 2, 2, 2}, Summary{N: 4, Mean: 2, P10: 2, P50: 2, P90: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if got.N != tt.want.N {
				t.Fatalf("N = %d, want %d", got.N, tt.want.N)
			}
			pairs := []struct {
				field     string
				got, want float64
			}{
				{"mean", got.Mean, tt.want.Mean},
				{"std", got.Std, tt.want.Std},
				{"p10", got.P10, tt.want.P10},
				{"p50", got.P50, tt.want.P50},
				{"p90", got.P90, tt.want.P90},
			}
			for _, p := range pairs {
				if math.Abs(p.got-p.want) > 0.001 {
					t.Errorf("%s = %v, want %v", p.field, p.got, p.want)
				}
			}
		})
	}
}

func TestSummarizeLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10, 60)
	if c.WindowDurationTicks() != 600 {
		t.Fatalf("window = %d ticks, want 600", c.WindowDurationTicks())
	}

	for i := 0; i < 4; i++ {
		c.RecordShot(5)
	}
	c.RecordHit()
	c.RecordHit()
	c.RecordSpawn(components.RarityCommon)
	c.RecordSpawn(components.RarityMythic)
	c.RecordKill(components.RarityCommon, 2, 30)
	c.RecordKill(components.RarityMythic, 500, 90)
	c.RecordEffect(components.AbilityPull)
	c.RecordUpgrade(100)
	c.RecordCull()

	if c.ShouldFlush(599) {
		t.Error("ShouldFlush(599) before the window elapsed")
	}
	if !c.ShouldFlush(600) {
		t.Fatal("ShouldFlush(600) = false")
	}

	s := c.Flush(600, Snapshot{Wave: 2, Coins: 1400, HealthFractions: []float64{0.5, 1}})

	if s.Shots != 4 || s.Hits != 2 || s.HitRate != 0.5 {
		t.Errorf("shots/hits/rate = %d/%d/%v", s.Shots, s.Hits, s.HitRate)
	}
	if s.CoinsSpent != 20 || s.CoinsWon != 502 {
		t.Errorf("spent/won = %d/%d", s.CoinsSpent, s.CoinsWon)
	}
	if math.Abs(s.RTP-25.1) > 1e-9 {
		t.Errorf("rtp = %v, want 25.1", s.RTP)
	}
	if s.Kills != 2 || s.KillsCommon != 1 || s.KillsMythic != 1 {
		t.Errorf("kills = %d (common %d, mythic %d)", s.Kills, s.KillsCommon, s.KillsMythic)
	}
	if s.Spawns != 2 || s.Culled != 1 || s.PullEffects != 1 || s.Upgrades != 1 {
		t.Errorf("spawns %d culled %d pulls %d upgrades %d", s.Spawns, s.Culled, s.PullEffects, s.Upgrades)
	}
	if s.TimeToKillMean != 60 || s.HealthMean != 0.75 {
		t.Errorf("ttk mean %v health mean %v", s.TimeToKillMean, s.HealthMean)
	}
	if s.Wave != 2 || s.Coins != 1400 || s.SimTimeSec != 10 {
		t.Errorf("snapshot not carried: %+v", s)
	}

	next := c.Flush(1200, Snapshot{})
	if next.WindowStartTick != 600 || next.Shots != 0 || next.Kills != 0 || next.RTP != 0 || next.TimeToKillMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
