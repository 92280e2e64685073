package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/economy"
	"github.com/pthm-cable/reef/events"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	AutoFire       bool

	// StatsCallback receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state and drives the fixed-step clock.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	// Core systems
	bus       *events.Bus
	ledger    *economy.Ledger
	pool      *systems.EntityPool
	sched     *systems.Scheduler
	waves     *systems.WaveDirector
	reaper    *systems.Reaper
	effects   *systems.EffectDispatcher
	resolver  *systems.CollisionResolver
	templates [components.RarityCount]systems.CreatureTemplate

	cannonX, cannonY float32

	// State
	tick int64

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	lastStats        telemetry.WindowStats
}

// New creates a game from an explicit, validated config.
func New(cfg *config.Config, opts Options) *Game {
	if err := cfg.Validate(); err != nil {
		panic("game: invalid config: " + err.Error())
	}

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		rngSeed:       opts.Seed,
		bus:           events.NewBus(events.DefaultRetain),
		ledger:        economy.NewLedger(cfg.Economy),
		pool:          systems.NewEntityPool(cfg, opts.Seed),
		sched:         systems.NewScheduler(),
		templates:     systems.TemplatesFromConfig(cfg.Rarity),
		cannonX:       float32(cfg.Derived.CannonX),
		cannonY:       float32(cfg.Derived.CannonY),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}

	g.waves = systems.NewWaveDirector(cfg.Waves, cfg.Rarity, g.rng)
	g.reaper = systems.NewReaper(g.pool, g.ledger, g.bus, cfg.Effects)
	g.effects = systems.NewEffectDispatcher(g.pool, g.reaper, g.sched, g.bus)
	g.resolver = systems.NewCollisionResolver(g.pool, g.reaper, g.effects, g.bus, cfg.Cannon.HitRadiusFactor)

	g.initTelemetry(opts)

	if opts.AutoFire {
		g.ledger.SetAutoFire(true)
	}

	slog.Info("game_started",
		"seed", opts.Seed,
		"coins", g.ledger.Coins(),
		"auto_fire", opts.AutoFire,
		"run_id", g.outputManager.RunID(),
	)
	return g
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) *Game {
	return New(config.Cfg(), opts)
}

// initTelemetry sets up the collectors and optional CSV output.
func (g *Game) initTelemetry(opts Options) {
	tcfg := g.cfg.Telemetry
	window := tcfg.StatsWindow
	if opts.StatsWindowSec > 0 {
		window = opts.StatsWindowSec
	}

	g.collector = telemetry.NewCollector(window, int(g.cfg.Physics.TicksPerSecond))
	g.perfCollector = telemetry.NewPerfCollector(tcfg.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(tcfg, g.cfg.Economy.MaxPower)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		return
	}
	g.outputManager = om
	if err := om.WriteConfig(g.cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
}

// Events returns the outbound event bus.
func (g *Game) Events() *events.Bus {
	return g.bus
}

// Subscribe registers h to receive every event after each tick.
func (g *Game) Subscribe(h events.Handler) {
	g.bus.Subscribe(h)
}

// CurrentTick returns the number of ticks run so far.
func (g *Game) CurrentTick() int64 {
	return g.tick
}

// Economy returns a snapshot of the player's economy.
func (g *Game) Economy() economy.State {
	return g.ledger.State()
}

// CanUpgrade reports whether an upgrade request would currently succeed.
func (g *Game) CanUpgrade() bool {
	return g.ledger.CanUpgrade()
}

// UpgradeCost returns the price of the next cannon level.
func (g *Game) UpgradeCost() int64 {
	return g.ledger.UpgradeCost()
}

// Wave returns a snapshot of wave progression.
func (g *Game) Wave() systems.WaveState {
	return g.waves.State()
}

// ForEachCreature visits live creatures in spawn order until fn returns false.
func (g *Game) ForEachCreature(fn func(systems.CreatureView) bool) {
	g.pool.ForEachCreature(fn)
}

// ForEachProjectile visits live projectiles in fire order until fn returns false.
func (g *Game) ForEachProjectile(fn func(systems.ProjectileView) bool) {
	g.pool.ForEachProjectile(fn)
}

// CreatureCount returns the number of live creatures.
func (g *Game) CreatureCount() int {
	return g.pool.CreatureCount()
}

// ProjectileCount returns the number of live projectiles.
func (g *Game) ProjectileCount() int {
	return g.pool.ProjectileCount()
}

// Cannon returns the firing origin.
func (g *Game) Cannon() (x, y float32) {
	return g.cannonX, g.cannonY
}

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Wells returns the pull wells currently in force.
func (g *Game) Wells() []systems.PullEffect {
	return g.effects.Wells()
}

// HitRadius returns the collision radius of a creature.
func (g *Game) HitRadius(c systems.CreatureView) float32 {
	return c.Size * float32(g.cfg.Cannon.HitRadiusFactor)
}

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// PerfStats returns tick timing over the perf collector window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame marks a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// RunID returns the telemetry run identifier, or "" when output is disabled.
func (g *Game) RunID() string {
	return g.outputManager.RunID()
}

// Close flushes and closes telemetry output.
func (g *Game) Close() {
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
