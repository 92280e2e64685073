package telemetry

import "github.com/pthm-cable/reef/components"

// Collector accumulates game activity within tick windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	ticksPerSecond      int

	windowStartTick int64

	shots        int
	coinsSpent   int64
	hits         int
	coinsWon     int64
	upgrades     int
	upgradeSpend int64

	spawns  [components.RarityCount]int
	kills   [components.RarityCount]int
	culled  int
	effects [components.AbilityPull + 1]int

	// Ticks each killed creature was alive, this window only.
	timeToKill []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// ticksPerSecond: fixed tick rate used for seconds-to-ticks conversion
func NewCollector(windowDurationSec float64, ticksPerSecond int) *Collector {
	ticksPerWindow := int64(windowDurationSec * float64(ticksPerSecond))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		ticksPerSecond:      ticksPerSecond,
	}
}

// RecordShot records a fired projectile and the bet it cost.
func (c *Collector) RecordShot(bet int64) {
	c.shots++
	c.coinsSpent += bet
}

// RecordHit records a projectile striking a creature.
func (c *Collector) RecordHit() {
	c.hits++
}

// RecordSpawn records a creature entering the playfield.
func (c *Collector) RecordSpawn(r components.Rarity) {
	c.spawns[r]++
}

// RecordKill records a creature death, its payout and how long it lived.
func (c *Collector) RecordKill(r components.Rarity, reward int64, ticksAlive int64) {
	c.kills[r]++
	c.coinsWon += reward
	c.timeToKill = append(c.timeToKill, float64(ticksAlive))
}

// RecordCull records a creature that escaped off the left edge.
func (c *Collector) RecordCull() {
	c.culled++
}

// RecordEffect records an ability being applied.
func (c *Collector) RecordEffect(a components.Ability) {
	if int(a) < len(c.effects) {
		c.effects[a]++
	}
}

// RecordUpgrade records a cannon upgrade purchase.
func (c *Collector) RecordUpgrade(cost int64) {
	c.upgrades++
	c.upgradeSpend += cost
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Snapshot is the game state sampled at window end.
type Snapshot struct {
	Wave        int
	Coins       int64
	Bet         int
	Power       int
	Creatures   int
	Projectiles int

	// Remaining health fraction of every live creature.
	HealthFractions []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, snap Snapshot) WindowStats {
	var hitRate, rtp float64
	if c.shots > 0 {
		hitRate = float64(c.hits) / float64(c.shots)
	}
	if c.coinsSpent > 0 {
		rtp = float64(c.coinsWon) / float64(c.coinsSpent)
	}

	var kills int
	for _, k := range c.kills {
		kills += k
	}
	var spawns int
	for _, s := range c.spawns {
		spawns += s
	}

	health := Summarize(snap.HealthFractions)
	ttk := Summarize(c.timeToKill)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) / float64(c.ticksPerSecond),

		Wave:        snap.Wave,
		Coins:       snap.Coins,
		Bet:         snap.Bet,
		Power:       snap.Power,
		Creatures:   snap.Creatures,
		Projectiles: snap.Projectiles,

		Shots:        c.shots,
		Hits:         c.hits,
		HitRate:      hitRate,
		CoinsSpent:   c.coinsSpent,
		CoinsWon:     c.coinsWon,
		RTP:          rtp,
		Upgrades:     c.upgrades,
		UpgradeSpend: c.upgradeSpend,

		Spawns:         spawns,
		Culled:         c.culled,
		Kills:          kills,
		KillsCommon:    c.kills[components.RarityCommon],
		KillsRare:      c.kills[components.RarityRare],
		KillsEpic:      c.kills[components.RarityEpic],
		KillsLegendary: c.kills[components.RarityLegendary],
		KillsMythic:    c.kills[components.RarityMythic],

		AreaEffects:   c.effects[components.AbilityArea],
		ChainEffects:  c.effects[components.AbilityChain],
		FreezeEffects: c.effects[components.AbilityCrowdControl],
		PullEffects:   c.effects[components.AbilityPull],

		HealthMean: health.Mean,
		HealthP10:  health.P10,
		HealthP50:  health.P50,
		HealthP90:  health.P90,

		TimeToKillMean: ttk.Mean,
		TimeToKillStd:  ttk.Std,
		TimeToKillP50:  ttk.P50,
		TimeToKillP90:  ttk.P90,
	}

	c.windowStartTick = currentTick
	c.shots = 0
	c.coinsSpent = 0
	c.hits = 0
	c.coinsWon = 0
	c.upgrades = 0
	c.upgradeSpend = 0
	c.spawns = [components.RarityCount]int{}
	c.kills = [components.RarityCount]int{}
	c.culled = 0
	c.effects = [components.AbilityPull + 1]int{}
	c.timeToKill = c.timeToKill[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
