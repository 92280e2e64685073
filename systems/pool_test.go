package systems

import (
	"math"
	"slices"
	"testing"

	"github.com/mlange-42/ark/ecs"
)

func TestSpawnProjectile(t *testing.T) {
	s := newTestSim(t)

	if _, ok := s.pool.SpawnProjectile(60, 360, 60, 360, 1); ok {
		t.Error("degenerate aim should be rejected")
	}
	if s.pool.ProjectileCount() != 0 {
		t.Fatalf("projectile count = %d, want 0", s.pool.ProjectileCount())
	}

	id, ok := s.pool.SpawnProjectile(0, 0, 3, 4, 7)
	if !ok {
		t.Fatal("SpawnProjectile rejected a valid aim")
	}
	p, _ := s.pool.Projectile(id)
	if math.Abs(float64(p.DirX)-0.6) > 1e-6 || math.Abs(float64(p.DirY)-0.8) > 1e-6 {
		t.Errorf("direction = (%v, %v), want (0.6, 0.8)", p.DirX, p.DirY)
	}
	if p.Power != 7 {
		t.Errorf("power = %d, want 7", p.Power)
	}
}

func TestDamageClampsAndKeepsCreature(t *testing.T) {
	s := newTestSim(t)
	id := s.pool.SpawnCreature(plain(10), 500, 300, 0)

	tests := []struct {
		amount    int
		wantAlive bool
		wantLeft  int
	}{
		{6, true, 4},
		{5, false, 0},
	}
	for i, tt := range tests {
		res, ok := s.pool.Damage(id, tt.amount)
		if !ok {
			t.Fatalf("hit %d: creature not found", i+1)
		}
		if res.Alive != tt.wantAlive || res.Remaining != tt.wantLeft {
			t.Errorf("hit %d: got %+v, want alive=%v remaining=%d", i+1, res, tt.wantAlive, tt.wantLeft)
		}
	}
	if s.pool.CreatureCount() != 1 {
		t.Error("Damage must not remove the creature")
	}
	if _, ok := s.pool.Damage(999, 1); ok {
		t.Error("unknown id should report !ok")
	}
}

func TestAdvance(t *testing.T) {
	s := newTestSim(t)
	cid := s.pool.SpawnCreature(plain(5), 500, 300, 0)
	pid, _ := s.pool.SpawnProjectile(0, 300, 10, 300, 1)

	s.pool.Advance(2)

	c, _ := s.pool.Creature(cid)
	if c.X != 498 || c.Y != 300 {
		t.Errorf("creature at (%v, %v), want (498, 300)", c.X, c.Y)
	}
	p, _ := s.pool.Projectile(pid)
	want := float32(2 * s.cfg.Cannon.ProjectileSpeed)
	if p.X != want || p.Y != 300 {
		t.Errorf("projectile at (%v, %v), want (%v, 300)", p.X, p.Y, want)
	}
}

func TestCull(t *testing.T) {
	s := newTestSim(t)
	margin := float32(s.cfg.Playfield.CullMargin)
	w := float32(s.cfg.Playfield.Width)
	h := float32(s.cfg.Playfield.Height)

	gone := s.pool.SpawnCreature(plain(5), -margin-1, 300, 0)
	edge := s.pool.SpawnCreature(plain(5), -margin, 300, 0)
	entering := s.pool.SpawnCreature(plain(5), w+500, 300, 0)

	projectiles := []struct {
		x, y     float32
		wantGone bool
	}{
		{w / 2, h / 2, false},
		{-1, h / 2, true},
		{w + 1, h / 2, true},
		{w / 2, -1, true},
		{w / 2, h + 1, true},
	}
	ids := make([]ProjectileID, len(projectiles))
	for i, p := range projectiles {
		// Spawn at the target point, aimed anywhere.
		ids[i], _ = s.pool.SpawnProjectile(p.x, p.y, p.x+1, p.y, 1)
	}

	res := s.pool.Cull()
	if len(res.Creatures) != 1 || res.Creatures[0].ID != gone {
		t.Errorf("culled creatures = %+v, want only %d", res.Creatures, gone)
	}
	for _, id := range []CreatureID{edge, entering} {
		if _, ok := s.pool.Creature(id); !ok {
			t.Errorf("creature %d should survive cull", id)
		}
	}
	for i, p := range projectiles {
		_, alive := s.pool.Projectile(ids[i])
		if alive == p.wantGone {
			t.Errorf("projectile at (%v, %v): alive=%v, want gone=%v", p.x, p.y, alive, p.wantGone)
		}
	}

	if again := s.pool.Cull(); len(again.Creatures)+len(again.Projectiles) != 0 {
		t.Error("second cull removed entities again")
	}
}

func TestInsertionOrderSurvivesRemoval(t *testing.T) {
	s := newTestSim(t)
	var ids []CreatureID
	for i := 0; i < 6; i++ {
		ids = append(ids, s.pool.SpawnCreature(plain(5), float32(100+i*10), 300, 0))
	}
	s.pool.RemoveCreature(ids[1])
	s.pool.RemoveCreature(ids[4])
	ids = append(ids, s.pool.SpawnCreature(plain(5), 50, 300, 0))

	want := []CreatureID{ids[0], ids[2], ids[3], ids[5], ids[6]}
	got := s.pool.CreatureIDs()
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
	if _, ok := s.pool.RemoveCreature(ids[1]); ok {
		t.Error("removing twice should fail")
	}
}

func TestSwimWobbleBounded(t *testing.T) {
	cfg := newTestSim(t).cfg
	cfg.Swim.WobbleAmplitude = 0.5
	pool := NewEntityPool(cfg, 7)
	id := pool.SpawnCreature(plain(5), 600, 300, 0)

	prev, _ := pool.Creature(id)
	for i := 0; i < 100; i++ {
		pool.Advance(1)
		cur, _ := pool.Creature(id)
		if dy := math.Abs(float64(cur.Y - prev.Y)); dy > 0.5+1e-4 {
			t.Fatalf("tick %d: wobble moved %v, want <= 0.5", i, dy)
		}
		prev = cur
	}
}

func TestRemovalFreesEntities(t *testing.T) {
	s := newTestSim(t)
	margin := float32(s.cfg.Playfield.CullMargin)

	culled := s.pool.SpawnCreature(plain(5), -margin-1, 300, 0)
	killed := s.pool.SpawnCreature(plain(5), 500, 300, 0)
	out, _ := s.pool.SpawnProjectile(-1, 300, -2, 300, 1)
	hit, _ := s.pool.SpawnProjectile(100, 300, 200, 300, 1)

	creatureEntity := func(id CreatureID) ecs.Entity { return s.pool.creatureIdx[id] }
	projectileEntity := func(id ProjectileID) ecs.Entity { return s.pool.projIdx[id] }
	entities := []ecs.Entity{creatureEntity(culled), creatureEntity(killed), projectileEntity(out), projectileEntity(hit)}

	s.pool.Cull()
	s.pool.RemoveCreature(killed)
	s.pool.RemoveProjectile(hit)

	for i, e := range entities {
		if s.pool.world.Alive(e) {
			t.Errorf("entity %d still alive in the world after removal", i)
		}
	}
}

func TestHealthFractions(t *testing.T) {
	s := newTestSim(t)
	hurt := s.pool.SpawnCreature(plain(4), 500, 300, 0)
	s.pool.SpawnCreature(plain(10), 600, 300, 0)
	gone := s.pool.SpawnCreature(plain(10), 700, 300, 0)
	s.pool.SpawnProjectile(0, 0, 1, 0, 1)
	s.pool.Damage(hurt, 3)
	s.pool.RemoveCreature(gone)

	got := s.pool.HealthFractions(nil)
	slices.Sort(got)
	want := []float64{0.25, 1}
	if !slices.Equal(got, want) {
		t.Errorf("fractions = %v, want %v", got, want)
	}
}
