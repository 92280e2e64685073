package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/events"
)

type testWallet struct {
	coins int64
}

func (w *testWallet) Credit(amount int64) { w.coins += amount }
func (w *testWallet) Coins() int64        { return w.coins }

// testSim wires the systems the way the game does, without telemetry.
type testSim struct {
	cfg      *config.Config
	pool     *EntityPool
	bus      *events.Bus
	wallet   *testWallet
	sched    *Scheduler
	reaper   *Reaper
	effects  *EffectDispatcher
	resolver *CollisionResolver
	waves    *WaveDirector
}

func newTestSim(t *testing.T) *testSim {
	t.Helper()
	cfg := config.Default()
	cfg.Swim.WobbleAmplitude = 0

	s := &testSim{
		cfg:    cfg,
		pool:   NewEntityPool(cfg, 1),
		bus:    events.NewBus(0),
		wallet: &testWallet{},
		sched:  NewScheduler(),
	}
	s.reaper = NewReaper(s.pool, s.wallet, s.bus, cfg.Effects)
	s.effects = NewEffectDispatcher(s.pool, s.reaper, s.sched, s.bus)
	s.resolver = NewCollisionResolver(s.pool, s.reaper, s.effects, s.bus, cfg.Cannon.HitRadiusFactor)
	s.waves = NewWaveDirector(cfg.Waves, cfg.Rarity, rand.New(rand.NewSource(1)))
	return s
}

// plain returns a creature template with the given health and no ability.
func plain(health int) CreatureTemplate {
	return CreatureTemplate{
		Rarity:     components.RarityCommon,
		BaseReward: 2,
		Multiplier: 1,
		Size:       1,
		Health:     health,
		Speed:      1,
	}
}

func (s *testSim) health(t *testing.T, id CreatureID) int {
	t.Helper()
	v, ok := s.pool.Creature(id)
	if !ok {
		return 0
	}
	return v.Health
}

// drain flushes the bus and returns everything emitted so far.
func (s *testSim) drain() []events.Event {
	s.bus.Flush()
	return s.bus.Drain()
}
