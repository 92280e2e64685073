package systems

import (
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// CreatureID identifies a creature for its whole lifetime. IDs increase in spawn order.
type CreatureID uint32

// ProjectileID identifies a projectile. IDs increase in fire order.
type ProjectileID uint32

// CreatureTemplate is the gameplay data needed to spawn a creature.
type CreatureTemplate struct {
	Rarity     components.Rarity
	BaseReward int64
	Multiplier int64
	Size       float32
	Health     int
	Speed      float32
	Ability    components.Ability
}

// TemplatesFromConfig builds one template per rarity tier.
// The config must already be validated.
func TemplatesFromConfig(tiers []config.RarityConfig) [components.RarityCount]CreatureTemplate {
	var out [components.RarityCount]CreatureTemplate
	for i, tier := range tiers {
		ability, _ := components.ParseAbility(tier.Ability)
		out[i] = CreatureTemplate{
			Rarity:     components.Rarity(i),
			BaseReward: tier.BaseReward,
			Multiplier: tier.Multiplier,
			Size:       float32(tier.Size),
			Health:     tier.Health,
			Speed:      float32(tier.Speed),
			Ability:    ability,
		}
	}
	return out
}

// CreatureView is a read-only snapshot of a live creature.
type CreatureView struct {
	ID        CreatureID
	Rarity    components.Rarity
	Ability   components.Ability
	X, Y      float32
	Size      float32
	Health    int
	MaxHealth int
	Reward    int64
	SpawnTick int64
	Slowed    bool
}

// ProjectileView is a read-only snapshot of a live projectile.
type ProjectileView struct {
	ID         ProjectileID
	X, Y       float32
	DirX, DirY float32
	Power      int
}

// DamageResult reports the outcome of EntityPool.Damage.
type DamageResult struct {
	Alive     bool
	Remaining int
}

// CullResult lists everything removed by one Cull pass, in insertion order.
type CullResult struct {
	Creatures   []CreatureView
	Projectiles []ProjectileView
}

type creatureSlot struct {
	id CreatureID
	e  ecs.Entity
}

type projectileSlot struct {
	id ProjectileID
	e  ecs.Entity
}

// Bounds is the playfield rectangle plus cull margins.
type Bounds struct {
	Width, Height    float32
	CullMargin       float32 // Creatures are culled once x < -CullMargin
	ProjectileMargin float32 // Projectiles are culled outside the grown rectangle
}

// EntityPool owns the live creatures and projectiles.
//
// Entities live in an ark world, but the pool keeps its own slices in
// insertion order since the world does not preserve it across removals.
type EntityPool struct {
	world *ecs.World

	creatureMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Health,
		components.Creature,
		components.Status,
	]
	projectileMapper *ecs.Map2[components.Position, components.Projectile]

	creatureFilter   ecs.Filter4[components.Position, components.Velocity, components.Status, components.Creature]
	healthFilter     ecs.Filter1[components.Health]
	projectileFilter ecs.Filter2[components.Position, components.Projectile]

	posMap    *ecs.Map[components.Position]
	bodyMap   *ecs.Map[components.Body]
	healthMap *ecs.Map[components.Health]
	crMap     *ecs.Map[components.Creature]
	statusMap *ecs.Map[components.Status]
	projMap   *ecs.Map[components.Projectile]

	creatures   []creatureSlot
	projectiles []projectileSlot
	creatureIdx map[CreatureID]ecs.Entity
	projIdx     map[ProjectileID]ecs.Entity

	nextCreature   CreatureID
	nextProjectile ProjectileID

	grid      *SpatialGrid
	swim      *SwimNoise
	bounds    Bounds
	projSpeed float32
	maxSize   float32
	elapsed   float64 // Sum of dt passed to Advance
	scratch   []Neighbor
}

// NewEntityPool creates an empty pool for the given config.
// seed drives the swim wobble.
func NewEntityPool(cfg *config.Config, seed int64) *EntityPool {
	w := ecs.NewWorld()
	bounds := Bounds{
		Width:            float32(cfg.Playfield.Width),
		Height:           float32(cfg.Playfield.Height),
		CullMargin:       float32(cfg.Playfield.CullMargin),
		ProjectileMargin: float32(cfg.Playfield.ProjectileMargin),
	}

	p := &EntityPool{
		world: w,
		creatureMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Health,
			components.Creature,
			components.Status,
		](w),
		projectileMapper: ecs.NewMap2[components.Position, components.Projectile](w),
		creatureFilter:   *ecs.NewFilter4[components.Position, components.Velocity, components.Status, components.Creature](w),
		healthFilter:     *ecs.NewFilter1[components.Health](w),
		projectileFilter: *ecs.NewFilter2[components.Position, components.Projectile](w),
		posMap:           ecs.NewMap[components.Position](w),
		bodyMap:          ecs.NewMap[components.Body](w),
		healthMap:        ecs.NewMap[components.Health](w),
		crMap:            ecs.NewMap[components.Creature](w),
		statusMap:        ecs.NewMap[components.Status](w),
		projMap:          ecs.NewMap[components.Projectile](w),
		creatureIdx:      make(map[CreatureID]ecs.Entity),
		projIdx:          make(map[ProjectileID]ecs.Entity),
		grid:             NewSpatialGrid(bounds.Width, bounds.Height, float32(cfg.Physics.GridCellSize)),
		swim:             NewSwimNoise(seed, cfg.Swim.WobbleAmplitude, cfg.Swim.WobbleFrequency),
		bounds:           bounds,
		projSpeed:        float32(cfg.Cannon.ProjectileSpeed),
	}
	for _, tier := range cfg.Rarity {
		p.maxSize = max(p.maxSize, float32(tier.Size))
	}
	return p
}

// Bounds returns the playfield rectangle the pool culls against.
func (p *EntityPool) Bounds() Bounds {
	return p.bounds
}

// SpawnCreature inserts a creature at full health and returns its ID.
// The creature swims toward the firing edge at the template speed.
func (p *EntityPool) SpawnCreature(tmpl CreatureTemplate, x, y float32, tick int64) CreatureID {
	if tmpl.Health <= 0 {
		panic(fmt.Sprintf("systems: spawn %s with health %d", tmpl.Rarity, tmpl.Health))
	}
	p.nextCreature++
	id := p.nextCreature

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: -tmpl.Speed, Y: 0}
	body := components.Body{Size: tmpl.Size}
	health := components.Health{Current: tmpl.Health, Max: tmpl.Health}
	cr := components.Creature{
		ID:         uint32(id),
		Rarity:     tmpl.Rarity,
		BaseReward: tmpl.BaseReward,
		Multiplier: tmpl.Multiplier,
		Ability:    tmpl.Ability,
		SpawnTick:  tick,
		Phase:      float32(id) * 7.31,
	}
	status := components.Status{SlowScale: 1}

	e := p.creatureMapper.NewEntity(&pos, &vel, &body, &health, &cr, &status)
	p.creatures = append(p.creatures, creatureSlot{id: id, e: e})
	p.creatureIdx[id] = e
	p.maxSize = max(p.maxSize, tmpl.Size)
	return id
}

// SpawnProjectile fires a projectile from origin toward aim.
// Returns false without spawning when origin equals aim.
func (p *EntityPool) SpawnProjectile(originX, originY, aimX, aimY float32, power int) (ProjectileID, bool) {
	dirX, dirY, length := normalize(aimX-originX, aimY-originY)
	if length == 0 {
		return 0, false
	}
	p.nextProjectile++
	id := p.nextProjectile

	pos := components.Position{X: originX, Y: originY}
	proj := components.Projectile{
		ID:      uint32(id),
		OriginX: originX,
		OriginY: originY,
		DirX:    dirX,
		DirY:    dirY,
		Speed:   p.projSpeed,
		Power:   power,
	}
	e := p.projectileMapper.NewEntity(&pos, &proj)
	p.projectiles = append(p.projectiles, projectileSlot{id: id, e: e})
	p.projIdx[id] = e
	return id, true
}

// Advance integrates creature and projectile positions by dt ticks.
// Creature velocity is scaled by its freeze status. Applies no damage.
func (p *EntityPool) Advance(dt float32) {
	p.elapsed += float64(dt)

	query := p.creatureFilter.Query()
	for query.Next() {
		pos, vel, status, cr := query.Get()
		scale := status.SlowScale * dt
		pos.X += vel.X * scale
		pos.Y += (vel.Y + p.swim.Offset(cr.Phase, p.elapsed)) * scale
		pos.Y = clampFloat(pos.Y, 0, p.bounds.Height)
	}

	pq := p.projectileFilter.Query()
	for pq.Next() {
		pos, proj := pq.Get()
		pos.X += proj.DirX * proj.Speed * dt
		pos.Y += proj.DirY * proj.Speed * dt
	}
}

// HealthFractions appends the remaining health fraction of every live
// creature to dst. Order is unspecified.
func (p *EntityPool) HealthFractions(dst []float64) []float64 {
	query := p.healthFilter.Query()
	for query.Next() {
		h := query.Get()
		dst = append(dst, float64(h.Fraction()))
	}
	return dst
}

// RebuildGrid re-indexes every live creature by position.
func (p *EntityPool) RebuildGrid() {
	p.grid.Clear()
	for _, s := range p.creatures {
		pos := p.posMap.Get(s.e)
		p.grid.Insert(s.e, pos.X, pos.Y)
	}
}

// Cull removes creatures past the firing edge and projectiles outside the playfield.
func (p *EntityPool) Cull() CullResult {
	var res CullResult

	minX := -p.bounds.CullMargin
	kept := p.creatures[:0]
	for _, s := range p.creatures {
		if p.posMap.Get(s.e).X < minX {
			res.Creatures = append(res.Creatures, p.creatureView(s.id, s.e))
			delete(p.creatureIdx, s.id)
			p.world.RemoveEntity(s.e)
			continue
		}
		kept = append(kept, s)
	}
	clear(p.creatures[len(kept):])
	p.creatures = kept

	m := p.bounds.ProjectileMargin
	keptP := p.projectiles[:0]
	for _, s := range p.projectiles {
		pos := p.posMap.Get(s.e)
		if pos.X < -m || pos.X > p.bounds.Width+m || pos.Y < -m || pos.Y > p.bounds.Height+m {
			res.Projectiles = append(res.Projectiles, p.projectileView(s.id, s.e))
			delete(p.projIdx, s.id)
			p.world.RemoveEntity(s.e)
			continue
		}
		keptP = append(keptP, s)
	}
	clear(p.projectiles[len(keptP):])
	p.projectiles = keptP

	return res
}

// Damage subtracts amount from a creature's health, clamping at zero.
// The creature is not removed; ok is false for an unknown ID.
func (p *EntityPool) Damage(id CreatureID, amount int) (res DamageResult, ok bool) {
	if amount < 0 {
		panic(fmt.Sprintf("systems: negative damage %d", amount))
	}
	e, ok := p.creatureIdx[id]
	if !ok {
		return DamageResult{}, false
	}
	h := p.healthMap.Get(e)
	h.Current = max(h.Current-amount, 0)
	return DamageResult{Alive: h.Current > 0, Remaining: h.Current}, true
}

// RemoveCreature deletes a creature and returns its final snapshot.
func (p *EntityPool) RemoveCreature(id CreatureID) (CreatureView, bool) {
	e, ok := p.creatureIdx[id]
	if !ok {
		return CreatureView{}, false
	}
	view := p.creatureView(id, e)

	i, found := slices.BinarySearchFunc(p.creatures, id, func(s creatureSlot, t CreatureID) int {
		return int(int64(s.id) - int64(t))
	})
	if found {
		p.creatures = slices.Delete(p.creatures, i, i+1)
	}
	delete(p.creatureIdx, id)
	p.world.RemoveEntity(e)
	return view, true
}

// RemoveProjectile deletes a projectile.
func (p *EntityPool) RemoveProjectile(id ProjectileID) bool {
	e, ok := p.projIdx[id]
	if !ok {
		return false
	}
	i, found := slices.BinarySearchFunc(p.projectiles, id, func(s projectileSlot, t ProjectileID) int {
		return int(int64(s.id) - int64(t))
	})
	if found {
		p.projectiles = slices.Delete(p.projectiles, i, i+1)
	}
	delete(p.projIdx, id)
	p.world.RemoveEntity(e)
	return true
}

// Creature returns a snapshot of a live creature.
func (p *EntityPool) Creature(id CreatureID) (CreatureView, bool) {
	e, ok := p.creatureIdx[id]
	if !ok {
		return CreatureView{}, false
	}
	return p.creatureView(id, e), true
}

// Projectile returns a snapshot of a live projectile.
func (p *EntityPool) Projectile(id ProjectileID) (ProjectileView, bool) {
	e, ok := p.projIdx[id]
	if !ok {
		return ProjectileView{}, false
	}
	return p.projectileView(id, e), true
}

// CreatureIDs returns the live creature IDs in insertion order.
func (p *EntityPool) CreatureIDs() []CreatureID {
	ids := make([]CreatureID, len(p.creatures))
	for i, s := range p.creatures {
		ids[i] = s.id
	}
	return ids
}

// ProjectileIDs returns the live projectile IDs in insertion order.
func (p *EntityPool) ProjectileIDs() []ProjectileID {
	ids := make([]ProjectileID, len(p.projectiles))
	for i, s := range p.projectiles {
		ids[i] = s.id
	}
	return ids
}

// ForEachCreature calls fn for every live creature in insertion order until fn returns false.
// fn must not spawn or remove entities.
func (p *EntityPool) ForEachCreature(fn func(CreatureView) bool) {
	for _, s := range p.creatures {
		if !fn(p.creatureView(s.id, s.e)) {
			return
		}
	}
}

// ForEachProjectile calls fn for every live projectile in insertion order until fn returns false.
// fn must not spawn or remove entities.
func (p *EntityPool) ForEachProjectile(fn func(ProjectileView) bool) {
	for _, s := range p.projectiles {
		if !fn(p.projectileView(s.id, s.e)) {
			return
		}
	}
}

// CreatureCount returns the number of live creatures.
func (p *EntityPool) CreatureCount() int {
	return len(p.creatures)
}

// ProjectileCount returns the number of live projectiles.
func (p *EntityPool) ProjectileCount() int {
	return len(p.projectiles)
}

func (p *EntityPool) creatureView(id CreatureID, e ecs.Entity) CreatureView {
	pos := p.posMap.Get(e)
	h := p.healthMap.Get(e)
	cr := p.crMap.Get(e)
	return CreatureView{
		ID:        id,
		Rarity:    cr.Rarity,
		Ability:   cr.Ability,
		X:         pos.X,
		Y:         pos.Y,
		Size:      p.bodyMap.Get(e).Size,
		Health:    h.Current,
		MaxHealth: h.Max,
		Reward:    cr.Reward(),
		SpawnTick: cr.SpawnTick,
		Slowed:    p.statusMap.Get(e).SlowScale < 1,
	}
}

func (p *EntityPool) projectileView(id ProjectileID, e ecs.Entity) ProjectileView {
	pos := p.posMap.Get(e)
	proj := p.projMap.Get(e)
	return ProjectileView{
		ID:    id,
		X:     pos.X,
		Y:     pos.Y,
		DirX:  proj.DirX,
		DirY:  proj.DirY,
		Power: proj.Power,
	}
}

// queryCreatures returns live creatures within radius of (x, y) from the grid.
// The grid must have been rebuilt since creatures last moved.
func (p *EntityPool) queryCreatures(x, y, radius float32) []Neighbor {
	p.scratch = p.grid.QueryRadiusInto(p.scratch[:0], x, y, radius, p.world, p.posMap)
	return p.scratch
}

// idOf returns the creature ID of a live creature entity.
func (p *EntityPool) idOf(e ecs.Entity) CreatureID {
	return CreatureID(p.crMap.Get(e).ID)
}
