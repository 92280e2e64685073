package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/events"
	"github.com/pthm-cable/reef/systems"
)

// Tick advances the simulation by one step. dt is a frame scale where 1.0 is
// one nominal tick; it is clamped to [0, max_frame_scale]. Every call
// increments the tick counter that scheduled expiries are keyed on.
//
// Phases run in a fixed order: scheduled expiries, waves, auto-fire, motion,
// collisions, effects, culling, wave advance, telemetry and the event flush.
func (g *Game) Tick(dt float64) {
	dt = clampFrame(dt, g.cfg.Physics.MaxFrameScale)
	g.tick++
	now := g.tick
	step := float32(dt)

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(systems.PhaseSchedule)
	g.sched.RunDue(now)

	g.perfCollector.StartPhase(systems.PhaseWaves)
	g.waves.Tick(dt, g.spawnCreature)

	g.perfCollector.StartPhase(systems.PhaseAutoFire)
	g.updateAutoFire()

	g.perfCollector.StartPhase(systems.PhaseAdvance)
	g.pool.Advance(step)

	g.perfCollector.StartPhase(systems.PhaseCollision)
	res := g.resolver.Resolve(now)
	for i := 0; i < res.Hits; i++ {
		g.collector.RecordHit()
	}

	g.perfCollector.StartPhase(systems.PhaseEffects)
	for _, out := range g.effects.Dispatch(now) {
		g.collector.RecordEffect(out.Ability)
	}
	g.effects.UpdateWells(now, step)

	g.perfCollector.StartPhase(systems.PhaseCull)
	g.cull(now)

	g.perfCollector.StartPhase(systems.PhaseWaveAdvance)
	g.checkWaveAdvance(now)

	g.perfCollector.StartPhase(systems.PhaseTelemetry)
	g.recordKills()
	g.flushTelemetry()

	g.perfCollector.StartPhase(systems.PhaseEvents)
	g.bus.Flush()

	g.perfCollector.EndTick()
}

// clampFrame bounds a frame scale to [0, limit]. NaN counts as zero.
func clampFrame(dt, limit float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return min(dt, limit)
}

// spawnCreature places a creature of tier r just past the far edge at a
// random height, with the tier's speed jittered.
func (g *Game) spawnCreature(r components.Rarity) {
	tier := g.cfg.Rarity[r]
	tmpl := g.templates[r]
	jitter := tier.SpeedJitter * (2*g.rng.Float64() - 1)
	tmpl.Speed *= float32(1 + jitter)

	pf := g.cfg.Playfield
	x := float32(pf.Width + pf.SpawnMargin)
	y := float32(pf.SpawnEdgeInset + g.rng.Float64()*(pf.Height-2*pf.SpawnEdgeInset))

	id := g.pool.SpawnCreature(tmpl, x, y, g.tick)
	g.bus.Emit(events.CreatureSpawned{
		Tick:   g.tick,
		ID:     uint32(id),
		Rarity: r,
		X:      x,
		Y:      y,
		Size:   tmpl.Size,
	})
	g.collector.RecordSpawn(r)
}

// cull removes entities that left the playfield and reports them.
func (g *Game) cull(now int64) {
	culled := g.pool.Cull()
	for _, c := range culled.Creatures {
		g.bus.Emit(events.CreatureRemoved{
			Tick:   now,
			ID:     uint32(c.ID),
			Rarity: c.Rarity,
			Reason: events.ReasonOffscreen,
			X:      c.X,
			Y:      c.Y,
		})
		g.collector.RecordCull()
	}
	for _, p := range culled.Projectiles {
		g.bus.Emit(events.ProjectileRemoved{
			Tick:   now,
			ID:     uint32(p.ID),
			Reason: events.ReasonOutOfBounds,
		})
	}
}

func (g *Game) checkWaveAdvance(now int64) {
	before := g.waves.State().Number
	if !g.waves.CheckAdvance() {
		return
	}
	wave := g.waves.State().Number
	if wave != before+1 {
		panic("game: wave did not advance by one")
	}
	g.bus.Emit(events.WaveAdvanced{Tick: now, Wave: wave})
	slog.Info("wave_advanced", "tick", now, "wave", wave, "coins", g.ledger.Coins())
}

// recordKills feeds this tick's deaths to the telemetry collector.
func (g *Game) recordKills() {
	for _, k := range g.reaper.TakeKills() {
		g.collector.RecordKill(k.Creature.Rarity, k.Reward, k.Tick-k.Creature.SpawnTick)
	}
}
