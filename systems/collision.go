package systems

import "github.com/pthm-cable/reef/events"

// CollisionResult counts what one Resolve pass did.
type CollisionResult struct {
	Hits  int
	Kills int
}

// CollisionResolver matches projectiles against creatures each tick.
type CollisionResolver struct {
	pool      *EntityPool
	reaper    *Reaper
	effects   *EffectDispatcher
	emit      events.Emitter
	hitFactor float32
}

// NewCollisionResolver creates a resolver. A projectile hits a creature when
// their distance is below hitFactor * size.
func NewCollisionResolver(pool *EntityPool, reaper *Reaper, effects *EffectDispatcher, emit events.Emitter, hitFactor float64) *CollisionResolver {
	return &CollisionResolver{
		pool:      pool,
		reaper:    reaper,
		effects:   effects,
		emit:      emit,
		hitFactor: float32(hitFactor),
	}
}

// Resolve checks every projectile in fire order. Each projectile hits at most
// the earliest-spawned creature in range, is removed, and deals its power as
// damage. Killed creatures are reaped and their abilities queued on the
// effect dispatcher.
func (r *CollisionResolver) Resolve(now int64) CollisionResult {
	var res CollisionResult
	r.pool.RebuildGrid()
	searchRadius := r.hitFactor * r.pool.maxSize

	for _, pid := range r.pool.ProjectileIDs() {
		proj, ok := r.pool.Projectile(pid)
		if !ok {
			continue
		}

		target, found := r.firstInRange(proj.X, proj.Y, searchRadius)
		if !found {
			continue
		}

		r.pool.RemoveProjectile(pid)
		r.emit.Emit(events.ProjectileRemoved{Tick: now, ID: uint32(pid), Reason: events.ReasonHit})
		res.Hits++

		dmg, _ := r.pool.Damage(target, proj.Power)
		if dmg.Alive {
			continue
		}
		kill, ok := r.reaper.Reap(target, now, events.SourceCollision)
		if !ok {
			continue
		}
		res.Kills++
		if kill.Effect != nil {
			r.effects.Enqueue(kill.Effect)
		}
	}
	return res
}

// firstInRange returns the lowest-ID live creature whose hit radius contains (x, y).
func (r *CollisionResolver) firstInRange(x, y, searchRadius float32) (CreatureID, bool) {
	var (
		best  CreatureID
		found bool
	)
	for _, n := range r.pool.queryCreatures(x, y, searchRadius) {
		hr := r.hitFactor * r.pool.bodyMap.Get(n.E).Size
		if n.DistSq >= hr*hr {
			continue
		}
		id := r.pool.idOf(n.E)
		if !found || id < best {
			best, found = id, true
		}
	}
	return best, found
}
