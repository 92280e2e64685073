package game

import (
	"log/slog"

	"github.com/pthm-cable/reef/events"
	"github.com/pthm-cable/reef/systems"
)

// FireAt fires one projectile from the cannon toward (x, y) at the current
// power, paying the current bet. Returns false, changing nothing, when the
// aim point is the cannon itself or the balance cannot cover the bet.
func (g *Game) FireAt(x, y float32) bool {
	if x == g.cannonX && y == g.cannonY {
		return false
	}
	state := g.ledger.State()
	bet := int64(state.Bet)
	if !g.ledger.Debit(bet) {
		return false
	}

	id, ok := g.pool.SpawnProjectile(g.cannonX, g.cannonY, x, y, state.Power)
	if !ok {
		// Aim offset too small to normalize.
		g.ledger.Credit(bet)
		return false
	}

	view, _ := g.pool.Projectile(id)
	g.bus.Emit(events.ProjectileSpawned{
		Tick:    g.tick,
		ID:      uint32(id),
		OriginX: g.cannonX,
		OriginY: g.cannonY,
		DirX:    view.DirX,
		DirY:    view.DirY,
		Power:   view.Power,
	})
	g.bus.Emit(events.ScoreChanged{
		Tick:    g.tick,
		Delta:   -bet,
		Balance: g.ledger.Coins(),
		Source:  events.SourceFire,
	})
	g.collector.RecordShot(bet)
	return true
}

// ToggleAutoFire flips auto-fire and returns the new setting.
func (g *Game) ToggleAutoFire() bool {
	enabled := g.ledger.ToggleAutoFire()
	g.bus.Emit(events.AutoFireToggled{Tick: g.tick, Enabled: enabled})
	return enabled
}

// RequestUpgrade buys the next cannon level if affordable and below the cap.
func (g *Game) RequestUpgrade() bool {
	cost, ok := g.ledger.TryUpgrade()
	if !ok {
		return false
	}
	state := g.ledger.State()
	g.bus.Emit(events.CannonUpgraded{Tick: g.tick, Power: state.Power, Cost: cost})
	g.bus.Emit(events.ScoreChanged{
		Tick:    g.tick,
		Delta:   -cost,
		Balance: state.Coins,
		Source:  events.SourceUpgrade,
	})
	g.collector.RecordUpgrade(cost)
	slog.Info("cannon_upgraded", "tick", g.tick, "power", state.Power, "cost", cost, "coins", state.Coins)
	return true
}

// SetBetAmount changes the per-shot bet. Rejects n outside [1, max_bet].
func (g *Game) SetBetAmount(n int) bool {
	return g.ledger.SetBet(n)
}

// updateAutoFire shoots at the best target every auto_fire_interval ticks
// while auto-fire is on. Unaffordable shots are skipped silently.
func (g *Game) updateAutoFire() {
	interval := int64(g.cfg.Cannon.AutoFireInterval)
	if !g.ledger.State().AutoFire || interval <= 0 || g.tick%interval != 0 {
		return
	}
	target, ok := g.autoFireTarget()
	if !ok {
		return
	}
	g.FireAt(target.X, target.Y)
}

// autoFireTarget picks the highest-reward creature inside the playfield.
// Ties go to the earliest spawned.
func (g *Game) autoFireTarget() (systems.CreatureView, bool) {
	var (
		best  systems.CreatureView
		found bool
	)
	w, h := float32(g.cfg.Playfield.Width), float32(g.cfg.Playfield.Height)
	g.pool.ForEachCreature(func(c systems.CreatureView) bool {
		if c.X < 0 || c.X > w || c.Y < 0 || c.Y > h {
			return true
		}
		if c.X == g.cannonX && c.Y == g.cannonY {
			return true
		}
		if !found || c.Reward > best.Reward {
			best, found = c, true
		}
		return true
	})
	return best, found
}
