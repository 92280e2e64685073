package game

import (
	"log/slog"

	"github.com/pthm-cable/reef/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleSnapshot())
	stats.RunID = g.outputManager.RunID()
	g.lastStats = stats
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sampleSnapshot captures the game state at window end.
func (g *Game) sampleSnapshot() telemetry.Snapshot {
	state := g.ledger.State()
	snap := telemetry.Snapshot{
		Wave:            g.waves.State().Number,
		Coins:           state.Coins,
		Bet:             state.Bet,
		Power:           state.Power,
		Creatures:       g.pool.CreatureCount(),
		Projectiles:     g.pool.ProjectileCount(),
	}
	snap.HealthFractions = g.pool.HealthFractions(make([]float64, 0, snap.Creatures))
	return snap
}
