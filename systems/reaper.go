package systems

import (
	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/events"
)

// Wallet is the part of the economy that receives kill rewards.
type Wallet interface {
	Credit(amount int64)
	Coins() int64
}

// Kill records a creature death and its payout.
type Kill struct {
	Creature CreatureView
	Tick     int64
	Reward   int64
	Source   events.ScoreSource
	Effect   Effect // Ability released at the death position, nil if none
}

// Reaper settles creature deaths: removal, reward credit and events.
// Collisions and effects both route deaths through it.
type Reaper struct {
	pool    *EntityPool
	wallet  Wallet
	emit    events.Emitter
	effects config.EffectsConfig
	kills   []Kill
}

// NewReaper creates a reaper crediting rewards to wallet.
func NewReaper(pool *EntityPool, wallet Wallet, emit events.Emitter, effects config.EffectsConfig) *Reaper {
	return &Reaper{
		pool:    pool,
		wallet:  wallet,
		emit:    emit,
		effects: effects,
	}
}

// Reap removes a dead creature, credits its reward and emits CreatureRemoved
// and ScoreChanged. The returned Kill carries the creature's ability, which the
// caller is responsible for dispatching. ok is false if the creature is gone.
func (r *Reaper) Reap(id CreatureID, now int64, source events.ScoreSource) (Kill, bool) {
	view, ok := r.pool.RemoveCreature(id)
	if !ok {
		return Kill{}, false
	}

	kill := Kill{Creature: view, Tick: now, Reward: view.Reward, Source: source}
	if view.Ability != components.AbilityNone {
		kill.Effect, _ = NewEffect(view.Ability, view.X, view.Y, r.effects)
	}

	r.emit.Emit(events.CreatureRemoved{
		Tick:   now,
		ID:     uint32(id),
		Rarity: view.Rarity,
		Reason: events.ReasonDeath,
		X:      view.X,
		Y:      view.Y,
	})
	if kill.Reward > 0 {
		r.wallet.Credit(kill.Reward)
		r.emit.Emit(events.ScoreChanged{
			Tick:    now,
			Delta:   kill.Reward,
			Balance: r.wallet.Coins(),
			Rarity:  view.Rarity,
			Source:  source,
		})
	}

	r.kills = append(r.kills, kill)
	return kill, true
}

// TakeKills returns the kills recorded since the last call.
func (r *Reaper) TakeKills() []Kill {
	out := r.kills
	r.kills = nil
	return out
}
