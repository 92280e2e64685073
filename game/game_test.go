package game

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"pgregory.net/rapid"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/events"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

// newTestGame builds a game from defaults without swim wobble.
// edit, if non-nil, adjusts the config before the game is created.
func newTestGame(t interface{ Helper() }, edit func(*config.Config)) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Swim.WobbleAmplitude = 0
	if edit != nil {
		edit(cfg)
	}
	return New(cfg, Options{Seed: 1})
}

// collect subscribes to g and returns a pointer to every event delivered.
func collect(g *Game) *[]events.Event {
	var got []events.Event
	g.Subscribe(func(e events.Event) { got = append(got, e) })
	return &got
}

func TestFireDebitsBet(t *testing.T) {
	g := newTestGame(t, nil)

	if !g.FireAt(400, 360) {
		t.Fatal("fire rejected with 1000 coins")
	}
	if got := g.Economy().Coins; got != 999 {
		t.Errorf("coins = %d, want 999", got)
	}
	if g.ProjectileCount() != 1 {
		t.Fatalf("projectiles = %d, want 1", g.ProjectileCount())
	}
	g.ForEachProjectile(func(p systems.ProjectileView) bool {
		if p.Power != 1 {
			t.Errorf("projectile power = %d, want 1", p.Power)
		}
		return true
	})
}

func TestFireRejections(t *testing.T) {
	tests := []struct {
		name       string
		startCoins int64
		aimX, aimY float32
	}{
		{"aim at cannon", 1000, 60, 360},
		{"cannot cover bet", 0, 400, 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, func(c *config.Config) { c.Economy.StartCoins = tt.startCoins })
			got := collect(g)

			if g.FireAt(tt.aimX, tt.aimY) {
				t.Fatal("fire should be rejected")
			}
			g.Tick(1)

			if g.Economy().Coins != tt.startCoins {
				t.Errorf("coins = %d, want %d", g.Economy().Coins, tt.startCoins)
			}
			if g.ProjectileCount() != 0 {
				t.Error("rejected fire spawned a projectile")
			}
			for _, e := range *got {
				if e.Kind() == events.KindProjectileSpawned || e.Kind() == events.KindScoreChanged {
					t.Errorf("unexpected event %v", e.Kind())
				}
			}
		})
	}
}

func TestFireKillsCreature(t *testing.T) {
	g := newTestGame(t, nil)
	got := collect(g)

	tmpl := g.templates[components.RarityCommon]
	tmpl.Speed = 0
	tmpl.Health = 1
	id := g.pool.SpawnCreature(tmpl, 300, 360, 0)
	target, _ := g.pool.Creature(id)

	if !g.FireAt(300, 360) {
		t.Fatal("fire rejected")
	}
	for i := 0; i < 60 && g.CreatureCount() > 0; i++ {
		g.Tick(1)
	}

	if _, ok := g.pool.Creature(id); ok {
		t.Fatal("creature survived a direct shot")
	}
	if want := 999 + target.Reward; g.Economy().Coins != want {
		t.Errorf("coins = %d, want %d", g.Economy().Coins, want)
	}
	if g.ProjectileCount() != 0 {
		t.Error("projectile should be consumed by the hit")
	}

	var removed, credited int
	for _, e := range *got {
		switch ev := e.(type) {
		case events.CreatureRemoved:
			if ev.ID == uint32(id) && ev.Reason == events.ReasonDeath {
				removed++
			}
		case events.ScoreChanged:
			if ev.Source == events.SourceCollision && ev.Delta == target.Reward {
				credited++
			}
		}
	}
	if removed != 1 || credited != 1 {
		t.Errorf("removed events = %d, credit events = %d, want 1 each", removed, credited)
	}
}

func TestUpgrade(t *testing.T) {
	t.Run("rejected when short", func(t *testing.T) {
		g := newTestGame(t, func(c *config.Config) { c.Economy.StartCoins = 50 })
		if g.UpgradeCost() != 100 {
			t.Fatalf("upgrade cost = %d, want 100", g.UpgradeCost())
		}
		if g.CanUpgrade() {
			t.Error("CanUpgrade = true with 50 coins")
		}
		if g.RequestUpgrade() {
			t.Fatal("upgrade accepted with 50 coins")
		}
		econ := g.Economy()
		if econ.Coins != 50 || econ.Power != 1 {
			t.Errorf("economy changed: %+v", econ)
		}
	})

	t.Run("accepted", func(t *testing.T) {
		g := newTestGame(t, nil)
		got := collect(g)
		if !g.RequestUpgrade() {
			t.Fatal("upgrade rejected with 1000 coins")
		}
		g.Tick(1)

		econ := g.Economy()
		if econ.Coins != 900 || econ.Power != 2 {
			t.Errorf("economy = %+v, want 900 coins at power 2", econ)
		}
		var upgraded bool
		for _, e := range *got {
			if u, ok := e.(events.CannonUpgraded); ok && u.Power == 2 && u.Cost == 100 {
				upgraded = true
			}
		}
		if !upgraded {
			t.Error("no CannonUpgraded event")
		}
	})
}

func TestWaveAdvances(t *testing.T) {
	g := newTestGame(t, nil)
	got := collect(g)

	for i := 0; i < 1200; i++ {
		g.Tick(1)
	}

	if g.Wave().Number != 3 {
		t.Errorf("wave = %d after 1200 ticks, want 3", g.Wave().Number)
	}
	var waves []int
	for _, e := range *got {
		if w, ok := e.(events.WaveAdvanced); ok {
			waves = append(waves, w.Wave)
		}
	}
	if len(waves) != 2 || waves[0] != 2 || waves[1] != 3 {
		t.Errorf("wave events = %v, want [2 3]", waves)
	}
}

func TestTickClampsFrameScale(t *testing.T) {
	g := newTestGame(t, nil)

	g.Tick(10)
	if g.Wave().WaveTimer != 4 {
		t.Errorf("wave timer = %v after Tick(10), want 4", g.Wave().WaveTimer)
	}
	g.Tick(-3)
	if g.Wave().WaveTimer != 4 {
		t.Errorf("negative dt moved the wave timer to %v", g.Wave().WaveTimer)
	}
	if g.CurrentTick() != 2 {
		t.Errorf("tick = %d, want 2", g.CurrentTick())
	}
}

func TestClampFrame(t *testing.T) {
	tests := []struct {
		dt, limit, want float64
	}{
		{1, 4, 1},
		{0.5, 4, 0.5},
		{9, 4, 4},
		{-1, 4, 0},
		{0, 4, 0},
	}

	for _, tt := range tests {
		if got := clampFrame(tt.dt, tt.limit); got != tt.want {
			t.Errorf("clampFrame(%v, %v) = %v, want %v", tt.dt, tt.limit, got, tt.want)
		}
	}
}

func TestAutoFireTarget(t *testing.T) {
	g := newTestGame(t, nil)

	common := g.templates[components.RarityCommon]
	epic := g.templates[components.RarityEpic]
	g.pool.SpawnCreature(common, 400, 300, 0)
	first := g.pool.SpawnCreature(epic, 500, 400, 0)
	g.pool.SpawnCreature(epic, 600, 200, 0)
	// Most valuable, but not yet inside the playfield.
	g.pool.SpawnCreature(g.templates[components.RarityMythic], 1300, 300, 0)

	target, ok := g.autoFireTarget()
	if !ok {
		t.Fatal("no target found")
	}
	if target.ID != first {
		t.Errorf("target = %d, want earliest epic %d", target.ID, first)
	}
}

func TestAutoFireInterval(t *testing.T) {
	g := newTestGame(t, nil)
	tmpl := g.templates[components.RarityCommon]
	tmpl.Speed = 0
	tmpl.Health = 1000
	g.pool.SpawnCreature(tmpl, 900, 360, 0)

	if !g.ToggleAutoFire() {
		t.Fatal("auto-fire should be on after toggle")
	}
	for i := 0; i < 24; i++ {
		g.Tick(1)
	}

	// Interval 12: shots at ticks 12 and 24.
	if got := g.Economy().Coins; got != 998 {
		t.Errorf("coins = %d after 24 ticks, want 998", got)
	}
}

func TestStatsWindowFlush(t *testing.T) {
	var windows []telemetry.WindowStats
	cfg := config.Default()
	g := New(cfg, Options{Seed: 1, StatsCallback: func(s telemetry.WindowStats) {
		windows = append(windows, s)
	}})

	for i := 0; i < 600; i++ {
		g.Tick(1)
	}

	if len(windows) != 1 {
		t.Fatalf("windows = %d, want 1", len(windows))
	}
	w := windows[0]
	if w.WindowEndTick != 600 {
		t.Errorf("window end = %d, want 600", w.WindowEndTick)
	}
	// Wave 1 spawns every 57 ticks.
	if w.Spawns != 10 {
		t.Errorf("spawns = %d, want 10", w.Spawns)
	}
	if w.Coins != 1000 || w.Shots != 0 {
		t.Errorf("window = %+v, want untouched economy", w)
	}
	if g.LastStats().WindowEndTick != 600 {
		t.Error("LastStats not updated")
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() (int64, int, int, int) {
		g := newTestGame(t, func(c *config.Config) { c.Swim.WobbleAmplitude = 0.6 })
		g.ToggleAutoFire()
		for i := 0; i < 3000; i++ {
			g.Tick(1)
		}
		return g.Economy().Coins, g.Wave().Number, g.CreatureCount(), g.ProjectileCount()
	}

	c1, w1, n1, p1 := run()
	c2, w2, n2, p2 := run()
	if c1 != c2 || w1 != w2 || n1 != n2 || p1 != p2 {
		t.Errorf("replay diverged: (%d %d %d %d) vs (%d %d %d %d)", c1, w1, n1, p1, c2, w2, n2, p2)
	}
}

func TestFireProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		coins := rapid.Int64Range(0, 300).Draw(t, "coins")
		bet := rapid.IntRange(1, 100).Draw(t, "bet")
		g := newTestGame(t, func(c *config.Config) { c.Economy.StartCoins = coins })
		if !g.SetBetAmount(bet) {
			t.Fatalf("bet %d rejected", bet)
		}

		x := float32(rapid.Float64Range(100, 1200).Draw(t, "x"))
		y := float32(rapid.Float64Range(0, 720).Draw(t, "y"))
		ok := g.FireAt(x, y)

		if ok != (coins >= int64(bet)) {
			t.Fatalf("fire = %v with %d coins and bet %d", ok, coins, bet)
		}
		want := coins
		if ok {
			want -= int64(bet)
		}
		if g.Economy().Coins != want {
			t.Fatalf("coins = %d, want %d", g.Economy().Coins, want)
		}
		wantProjectiles := 0
		if ok {
			wantProjectiles = 1
		}
		if g.ProjectileCount() != wantProjectiles {
			t.Fatalf("projectiles = %d after fire = %v", g.ProjectileCount(), ok)
		}
	})
}

func TestFreezeSlowsForDuration(t *testing.T) {
	g := newTestGame(t, nil)
	tmpl := g.templates[components.RarityCommon]
	tmpl.Speed = 1
	id := g.pool.SpawnCreature(tmpl, 1000, 360, 0)

	g.Tick(1)
	g.effects.Apply(systems.FreezeEffect{X: 500, Y: 360, Scale: 0.25, Duration: 10}, g.CurrentTick())

	slowed := 0
	prev, _ := g.pool.Creature(id)
	for i := 0; i < 15; i++ {
		g.Tick(1)
		cur, _ := g.pool.Creature(id)
		if prev.X-cur.X < 0.5 {
			slowed++
		}
		prev = cur
	}
	if slowed != 10 {
		t.Errorf("slowed steps = %d, want 10", slowed)
	}
}

func TestEffectKillAndSecondProjectileSameTick(t *testing.T) {
	g := newTestGame(t, nil)

	bomb := g.templates[components.RarityCommon]
	bomb.Speed = 0
	bomb.Health = 1
	bomb.Ability = components.AbilityArea
	bystander := bomb
	bystander.Ability = components.AbilityNone

	a := g.pool.SpawnCreature(bomb, 300, 360, 0)
	b := g.pool.SpawnCreature(bystander, 300, 460, 0)
	va, _ := g.pool.Creature(a)
	vb, _ := g.pool.Creature(b)

	// Both shots share a path and arrive in the same tick.
	if !g.FireAt(300, 360) || !g.FireAt(300, 360) {
		t.Fatal("fire rejected")
	}
	for i := 0; i < 60; i++ {
		if _, ok := g.pool.Creature(a); !ok {
			break
		}
		g.Tick(1)
	}

	if _, ok := g.pool.Creature(a); ok {
		t.Fatal("target survived two shots")
	}
	if _, ok := g.pool.Creature(b); ok {
		t.Error("area blast should kill the bystander in the same tick")
	}
	if g.ProjectileCount() != 1 {
		t.Errorf("projectiles = %d, want the second shot still in flight", g.ProjectileCount())
	}
	if want := 998 + va.Reward + vb.Reward; g.Economy().Coins != want {
		t.Errorf("coins = %d, want %d", g.Economy().Coins, want)
	}
}
