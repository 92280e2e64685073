// Package events defines the outbound notifications produced by the simulation.
//
// Events carry the data a renderer or UI needs and nothing about how to draw it.
// The Event interface is sealed: only the types in this package implement it,
// so consumers can switch over them exhaustively.
package events

import "github.com/pthm-cable/reef/components"

// Kind identifies an event variant.
type Kind uint8

const (
	KindCreatureSpawned Kind = iota
	KindCreatureRemoved
	KindProjectileSpawned
	KindProjectileRemoved
	KindEffectTriggered
	KindScoreChanged
	KindWaveAdvanced
	KindCannonUpgraded
	KindAutoFireToggled
)

var kindNames = [...]string{
	"creature_spawned",
	"creature_removed",
	"projectile_spawned",
	"projectile_removed",
	"effect_triggered",
	"score_changed",
	"wave_advanced",
	"cannon_upgraded",
	"auto_fire_toggled",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is one outbound notification.
type Event interface {
	Kind() Kind
	sealed()
}

// CreatureReason explains why a creature left the pool.
type CreatureReason uint8

const (
	ReasonDeath CreatureReason = iota
	ReasonOffscreen
)

func (r CreatureReason) String() string {
	if r == ReasonDeath {
		return "death"
	}
	return "offscreen"
}

// ProjectileReason explains why a projectile left the pool.
type ProjectileReason uint8

const (
	ReasonHit ProjectileReason = iota
	ReasonOutOfBounds
)

func (r ProjectileReason) String() string {
	if r == ReasonHit {
		return "hit"
	}
	return "out_of_bounds"
}

// ScoreSource names what moved the balance.
type ScoreSource uint8

const (
	SourceCollision ScoreSource = iota // Creature killed by a projectile
	SourceEffect                       // Creature killed by an effect
	SourceFire                         // Bet debited for a shot
	SourceUpgrade                      // Cannon upgrade purchased
)

func (s ScoreSource) String() string {
	switch s {
	case SourceCollision:
		return "collision"
	case SourceEffect:
		return "effect"
	case SourceFire:
		return "fire"
	default:
		return "upgrade"
	}
}

type CreatureSpawned struct {
	Tick   int64
	ID     uint32
	Rarity components.Rarity
	X, Y   float32
	Size   float32
}

type CreatureRemoved struct {
	Tick   int64
	ID     uint32
	Rarity components.Rarity
	Reason CreatureReason
	X, Y   float32
}

type ProjectileSpawned struct {
	Tick             int64
	ID               uint32
	OriginX, OriginY float32
	DirX, DirY       float32
	Power            int
}

type ProjectileRemoved struct {
	Tick   int64
	ID     uint32
	Reason ProjectileReason
}

// EffectTriggered reports an ability firing at a death position.
// Radius is the area of influence (link range for chain, zero for freeze).
// Duration is in ticks and zero for instant effects. Targets is the number of
// creatures affected at trigger time.
type EffectTriggered struct {
	Tick     int64
	Type     components.Ability
	X, Y     float32
	Radius   float32
	Duration int
	Targets  int
}

// ScoreChanged reports a balance change. Delta is negative for spending.
// Rarity is only meaningful for SourceCollision and SourceEffect.
type ScoreChanged struct {
	Tick    int64
	Delta   int64
	Balance int64
	Rarity  components.Rarity
	Source  ScoreSource
}

type WaveAdvanced struct {
	Tick int64
	Wave int
}

type CannonUpgraded struct {
	Tick  int64
	Power int
	Cost  int64
}

type AutoFireToggled struct {
	Tick    int64
	Enabled bool
}

func (CreatureSpawned) Kind() Kind   { return KindCreatureSpawned }
func (CreatureRemoved) Kind() Kind   { return KindCreatureRemoved }
func (ProjectileSpawned) Kind() Kind { return KindProjectileSpawned }
func (ProjectileRemoved) Kind() Kind { return KindProjectileRemoved }
func (EffectTriggered) Kind() Kind   { return KindEffectTriggered }
func (ScoreChanged) Kind() Kind      { return KindScoreChanged }
func (WaveAdvanced) Kind() Kind      { return KindWaveAdvanced }
func (CannonUpgraded) Kind() Kind    { return KindCannonUpgraded }
func (AutoFireToggled) Kind() Kind   { return KindAutoFireToggled }

func (CreatureSpawned) sealed()   {}
func (CreatureRemoved) sealed()   {}
func (ProjectileSpawned) sealed() {}
func (ProjectileRemoved) sealed() {}
func (EffectTriggered) sealed()   {}
func (ScoreChanged) sealed()      {}
func (WaveAdvanced) sealed()      {}
func (CannonUpgraded) sealed()    {}
func (AutoFireToggled) sealed()   {}
