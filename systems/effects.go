package systems

import (
	"fmt"
	"math"
	"slices"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/events"
)

// Effect is a special ability released at a death position.
// The set of implementations is closed: AreaEffect, ChainEffect, FreezeEffect, PullEffect.
type Effect interface {
	Ability() components.Ability
	Origin() (x, y float32)
	effect()
}

// AreaEffect damages every creature within Radius with linear falloff and
// pushes it away from the origin.
type AreaEffect struct {
	X, Y       float32
	Radius     float32
	BaseDamage int
	Knockback  float32
}

// ChainEffect jumps greedily to the nearest unhit creature within LinkRange.
// Hop i deals BaseDamage - Decay*i.
type ChainEffect struct {
	X, Y       float32
	LinkRange  float32
	BaseDamage int
	Decay      int
	MaxHops    int
}

// FreezeEffect scales the velocity of every live creature for Duration ticks.
type FreezeEffect struct {
	X, Y     float32
	Scale    float32
	Duration int
}

// PullEffect is a gravity well active for Duration ticks.
type PullEffect struct {
	X, Y               float32
	Radius             float32
	DeadZone           float32
	Force              float32
	Duration           int
	CoreDamage         int
	CoreDamageInterval int
}

func (AreaEffect) Ability() components.Ability   { return components.AbilityArea }
func (ChainEffect) Ability() components.Ability  { return components.AbilityChain }
func (FreezeEffect) Ability() components.Ability { return components.AbilityCrowdControl }
func (PullEffect) Ability() components.Ability   { return components.AbilityPull }

func (e AreaEffect) Origin() (float32, float32)   { return e.X, e.Y }
func (e ChainEffect) Origin() (float32, float32)  { return e.X, e.Y }
func (e FreezeEffect) Origin() (float32, float32) { return e.X, e.Y }
func (e PullEffect) Origin() (float32, float32)   { return e.X, e.Y }

func (AreaEffect) effect()   {}
func (ChainEffect) effect()  {}
func (FreezeEffect) effect() {}
func (PullEffect) effect()   {}

// NewEffect builds the effect for an ability at (x, y).
// Returns false for AbilityNone.
func NewEffect(ability components.Ability, x, y float32, cfg config.EffectsConfig) (Effect, bool) {
	switch ability {
	case components.AbilityArea:
		return AreaEffect{
			X:          x,
			Y:          y,
			Radius:     float32(cfg.Area.Radius),
			BaseDamage: cfg.Area.BaseDamage,
			Knockback:  float32(cfg.Area.Knockback),
		}, true
	case components.AbilityChain:
		return ChainEffect{
			X:          x,
			Y:          y,
			LinkRange:  float32(cfg.Chain.LinkRange),
			BaseDamage: cfg.Chain.BaseDamage,
			Decay:      cfg.Chain.Decay,
			MaxHops:    cfg.Chain.MaxHops,
		}, true
	case components.AbilityCrowdControl:
		return FreezeEffect{
			X:        x,
			Y:        y,
			Scale:    float32(cfg.Freeze.SpeedScale),
			Duration: cfg.Freeze.Duration,
		}, true
	case components.AbilityPull:
		return PullEffect{
			X:                  x,
			Y:                  y,
			Radius:             float32(cfg.Pull.Radius),
			DeadZone:           float32(cfg.Pull.DeadZone),
			Force:              float32(cfg.Pull.Force),
			Duration:           cfg.Pull.Duration,
			CoreDamage:         cfg.Pull.CoreDamage,
			CoreDamageInterval: cfg.Pull.CoreDamageInterval,
		}, true
	}
	return nil, false
}

// AreaDamage is floor(base * (1 - d/radius)) for d < radius, zero otherwise.
func AreaDamage(base int, d, radius float32) int {
	if d >= radius || radius <= 0 {
		return 0
	}
	return int(math.Floor(float64(base) * float64(1-d/radius)))
}

// ChainDamage is the damage dealt on hop i (zero-based).
func ChainDamage(base, decay, hop int) int {
	return base - decay*hop
}

// PullStep is the displacement toward the origin per tick at distance d.
func PullStep(force, d, radius float32) float32 {
	if radius <= 0 {
		return 0
	}
	return clamp01(1-d/radius) * force
}

// EffectOutcome summarizes one applied effect.
type EffectOutcome struct {
	Ability components.Ability
	Targets []CreatureID // Creatures affected, in application order
	Kills   int
}

type activeWell struct {
	id      uint64
	effect  PullEffect
	started int64
	until   int64
}

// EffectDispatcher applies effects to the creature population.
//
// Effects queued during tick N are applied by the Dispatch call of tick N.
// Abilities released by creatures killed during Dispatch are queued for the
// following tick, so an effect never re-enters the same pass.
type EffectDispatcher struct {
	pool   *EntityPool
	reaper *Reaper
	sched  *Scheduler
	emit   events.Emitter

	queue  []Effect
	wells  []activeWell
	nextID uint64
}

// NewEffectDispatcher creates a dispatcher over pool.
func NewEffectDispatcher(pool *EntityPool, reaper *Reaper, sched *Scheduler, emit events.Emitter) *EffectDispatcher {
	return &EffectDispatcher{
		pool:   pool,
		reaper: reaper,
		sched:  sched,
		emit:   emit,
	}
}

// Enqueue adds an effect for the next Dispatch call.
func (d *EffectDispatcher) Enqueue(e Effect) {
	d.queue = append(d.queue, e)
}

// Queued returns the number of effects waiting for Dispatch.
func (d *EffectDispatcher) Queued() int {
	return len(d.queue)
}

// ActiveWells returns the number of pull effects still in force.
func (d *EffectDispatcher) ActiveWells() int {
	return len(d.wells)
}

// Wells returns the pull effects still in force, oldest first.
func (d *EffectDispatcher) Wells() []PullEffect {
	out := make([]PullEffect, len(d.wells))
	for i, w := range d.wells {
		out[i] = w.effect
	}
	return out
}

// Dispatch applies every queued effect in order.
func (d *EffectDispatcher) Dispatch(now int64) []EffectOutcome {
	if len(d.queue) == 0 {
		return nil
	}
	batch := d.queue
	d.queue = nil

	outcomes := make([]EffectOutcome, 0, len(batch))
	for _, e := range batch {
		outcomes = append(outcomes, d.Apply(e, now))
	}
	return outcomes
}

// Apply runs one effect immediately and emits EffectTriggered.
func (d *EffectDispatcher) Apply(e Effect, now int64) EffectOutcome {
	x, y := e.Origin()
	trig := events.EffectTriggered{Tick: now, Type: e.Ability(), X: x, Y: y}

	var out EffectOutcome
	switch e := e.(type) {
	case AreaEffect:
		out = d.applyArea(e, now)
		trig.Radius = e.Radius
	case ChainEffect:
		out = d.applyChain(e, now)
		trig.Radius = e.LinkRange
	case FreezeEffect:
		out = d.applyFreeze(e, now)
		trig.Duration = e.Duration
	case PullEffect:
		out = d.applyPull(e, now)
		trig.Radius = e.Radius
		trig.Duration = e.Duration
	default:
		panic(fmt.Sprintf("systems: unknown effect %T", e))
	}
	out.Ability = e.Ability()
	trig.Targets = len(out.Targets)

	d.emit.Emit(trig)
	return out
}

// hit damages a creature and settles its death. Returns true if it died.
func (d *EffectDispatcher) hit(id CreatureID, amount int, now int64) bool {
	res, ok := d.pool.Damage(id, amount)
	if !ok || res.Alive {
		return false
	}
	if kill, ok := d.reaper.Reap(id, now, events.SourceEffect); ok && kill.Effect != nil {
		d.Enqueue(kill.Effect)
	}
	return true
}

// neighborsByID returns the creatures within radius sorted by ID.
func (d *EffectDispatcher) neighborsByID(x, y, radius float32) []Neighbor {
	d.pool.RebuildGrid()
	ns := slices.Clone(d.pool.queryCreatures(x, y, radius))
	slices.SortFunc(ns, func(a, b Neighbor) int {
		return int(int64(d.pool.idOf(a.E)) - int64(d.pool.idOf(b.E)))
	})
	return ns
}

func (d *EffectDispatcher) applyArea(e AreaEffect, now int64) EffectOutcome {
	var out EffectOutcome
	for _, n := range d.neighborsByID(e.X, e.Y, e.Radius) {
		dist := sqrt32(n.DistSq)
		if dist >= e.Radius {
			continue
		}
		id := d.pool.idOf(n.E)
		out.Targets = append(out.Targets, id)

		falloff := 1 - dist/e.Radius
		if dist > 0 {
			pos := d.pool.posMap.Get(n.E)
			push := e.Knockback * falloff
			pos.X += n.DX / dist * push
			pos.Y = clampFloat(pos.Y+n.DY/dist*push, 0, d.pool.bounds.Height)
		}
		if dmg := AreaDamage(e.BaseDamage, dist, e.Radius); dmg > 0 && d.hit(id, dmg, now) {
			out.Kills++
		}
	}
	return out
}

func (d *EffectDispatcher) applyChain(e ChainEffect, now int64) EffectOutcome {
	var out EffectOutcome
	hitSet := make(map[CreatureID]bool)
	x, y := e.X, e.Y
	d.pool.RebuildGrid()

	for hop := 0; hop < e.MaxHops; hop++ {
		dmg := ChainDamage(e.BaseDamage, e.Decay, hop)
		if dmg <= 0 {
			break
		}

		var (
			best     CreatureID
			bestDist float32 = math.MaxFloat32
			found    bool
		)
		for _, n := range d.pool.queryCreatures(x, y, e.LinkRange) {
			id := d.pool.idOf(n.E)
			if hitSet[id] {
				continue
			}
			if n.DistSq < bestDist || (n.DistSq == bestDist && id < best) {
				best, bestDist, found = id, n.DistSq, true
			}
		}
		if !found {
			break
		}

		hitSet[best] = true
		out.Targets = append(out.Targets, best)
		view, _ := d.pool.Creature(best)
		x, y = view.X, view.Y
		if d.hit(best, dmg, now) {
			out.Kills++
		}
	}
	return out
}

func (d *EffectDispatcher) applyFreeze(e FreezeEffect, now int64) EffectOutcome {
	var out EffectOutcome
	// Applied after this tick's motion, so the next Duration steps are slowed
	// and until is the first tick that moves at full speed.
	until := now + int64(e.Duration) + 1
	for _, s := range d.pool.creatures {
		st := d.pool.statusMap.Get(s.e)
		st.SlowScale = min(st.SlowScale, e.Scale)
		st.SlowUntil = max(st.SlowUntil, until)
		out.Targets = append(out.Targets, s.id)
	}
	d.sched.At(until, d.restoreSpeed)
	return out
}

// restoreSpeed clears every freeze that has lapsed by now.
// Creatures refrozen since keep their later expiry.
func (d *EffectDispatcher) restoreSpeed(now int64) {
	for _, s := range d.pool.creatures {
		st := d.pool.statusMap.Get(s.e)
		if st.SlowScale < 1 && st.SlowUntil <= now {
			st.SlowScale = 1
			st.SlowUntil = 0
		}
	}
}

func (d *EffectDispatcher) applyPull(e PullEffect, now int64) EffectOutcome {
	d.nextID++
	id := d.nextID
	until := now + int64(e.Duration)
	d.wells = append(d.wells, activeWell{id: id, effect: e, started: now, until: until})
	d.sched.At(until, func(int64) {
		d.wells = slices.DeleteFunc(d.wells, func(w activeWell) bool { return w.id == id })
	})

	var out EffectOutcome
	d.pool.RebuildGrid()
	for _, n := range d.pool.queryCreatures(e.X, e.Y, e.Radius) {
		out.Targets = append(out.Targets, d.pool.idOf(n.E))
	}
	return out
}

// UpdateWells applies every active pull for one tick of length dt.
// Creatures between the dead zone and the radius drift toward the origin;
// creatures inside the dead zone take core damage every interval ticks.
// Returns the number of creatures killed.
func (d *EffectDispatcher) UpdateWells(now int64, dt float32) int {
	kills := 0
	for i := 0; i < len(d.wells); i++ {
		w := d.wells[i]
		e := w.effect
		coreTick := e.CoreDamageInterval > 0 && (now-w.started)%int64(e.CoreDamageInterval) == 0

		for _, n := range d.neighborsByID(e.X, e.Y, e.Radius) {
			dist := sqrt32(n.DistSq)
			if dist <= e.DeadZone {
				if coreTick && e.CoreDamage > 0 && d.hit(d.pool.idOf(n.E), e.CoreDamage, now) {
					kills++
				}
				continue
			}
			step := min(PullStep(e.Force, dist, e.Radius)*dt, dist)
			pos := d.pool.posMap.Get(n.E)
			pos.X -= n.DX / dist * step
			pos.Y -= n.DY / dist * step
		}
	}
	return kills
}
