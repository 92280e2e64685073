package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/game"
	"github.com/pthm-cable/reef/telemetry"
)

// FitnessEvaluator runs headless auto-fire games and scores how close their
// return-to-player lands to the target.
type FitnessEvaluator struct {
	params     *ParamVector
	configPath string
	maxTicks   int64
	seeds      []int64
	targetRTP  float64

	mu          sync.Mutex
	lastRTP     float64
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
// Every run reloads configPath so seeds never share a rarity table.
func NewFitnessEvaluator(params *ParamVector, configPath string, maxTicks int64, seeds []int64, targetRTP float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		configPath: configPath,
		maxTicks:   maxTicks,
		seeds:      seeds,
		targetRTP:  targetRTP,
	}
}

// LastRTP returns the mean RTP from the most recent evaluation.
func (fe *FitnessEvaluator) LastRTP() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRTP
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// bottomlessCoins keeps auto-fire running for the whole run.
const bottomlessCoins = 1 << 40

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	rtp     float64
	quality float64
	err     error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the squared RTP error plus a small penalty for poor quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runSimulation(x, s)
			if err != nil {
				results[idx] = seedResult{err: err}
				return
			}
			results[idx] = seedResult{
				rtp:     aggregateRTP(windows),
				quality: computeQuality(windows),
			}
		}(i, seed)
	}
	wg.Wait()

	var rtpSum, qualitySum float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		rtpSum += r.rtp
		qualitySum += r.quality
	}

	n := float64(len(fe.seeds))
	rtp := rtpSum / n
	quality := qualitySum / n

	fe.mu.Lock()
	fe.lastRTP = rtp
	fe.lastQuality = quality
	fe.mu.Unlock()

	return fitness(rtp, fe.targetRTP, quality)
}

// runSimulation executes one headless run and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	fe.params.ApplyToConfig(cfg, x)
	cfg.Economy.StartCoins = bottomlessCoins

	var windows []telemetry.WindowStats
	g := game.New(cfg, game.Options{
		Seed:     seed,
		AutoFire: true,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Close()

	for g.CurrentTick() < fe.maxTicks {
		g.Tick(1)
	}
	return windows, nil
}

// fitness weights the RTP error against run quality.
func fitness(rtp, target, quality float64) float64 {
	d := rtp - target
	return d*d + qualityWeight*(1-quality)
}

const (
	qualityWeight = 0.05

	qualityWarmupWindows = 1 // skip the first window while the field fills
	ttkTarget            = 90.0
	ttkWidth             = 60.0
)

// aggregateRTP returns coins won per coin bet over every window.
func aggregateRTP(windows []telemetry.WindowStats) float64 {
	var won, spent int64
	for _, w := range windows {
		won += w.CoinsWon
		spent += w.CoinsSpent
	}
	if spent == 0 {
		return 0
	}
	return float64(won) / float64(spent)
}

// computeQuality scores a run in [0, 1]: steady RTP between windows and a
// median time-to-kill near ttkTarget ticks.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	rtps := make([]float64, 0, len(valid))
	var ttkSum float64
	var ttkCount int
	for _, w := range valid {
		if w.Shots > 0 {
			rtps = append(rtps, w.RTP)
		}
		if w.Kills > 0 {
			e := (w.TimeToKillP50 - ttkTarget) / ttkWidth
			ttkSum += math.Exp(-e * e)
			ttkCount++
		}
	}

	stability := 0.0
	if len(rtps) >= 2 {
		c := cv(rtps)
		stability = math.Exp(-c * c)
	}
	pacing := 0.0
	if ttkCount > 0 {
		pacing = ttkSum / float64(ttkCount)
	}

	return clamp01(0.5*stability + 0.5*pacing)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
