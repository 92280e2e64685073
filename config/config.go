// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Cannon    CannonConfig    `yaml:"cannon"`
	Economy   EconomyConfig   `yaml:"economy"`
	Waves     WavesConfig     `yaml:"waves"`
	Rarity    []RarityConfig  `yaml:"rarity"`
	Effects   EffectsConfig   `yaml:"effects"`
	Swim      SwimConfig      `yaml:"swim"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical host.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PlayfieldConfig describes the simulation rectangle.
// Creatures enter past the right edge and swim toward the cannon on the left.
type PlayfieldConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	CannonX          float64 `yaml:"cannon_x"`
	CannonY          float64 `yaml:"cannon_y"`          // 0 = vertical center
	SpawnMargin      float64 `yaml:"spawn_margin"`      // Spawn x = width + margin
	SpawnEdgeInset   float64 `yaml:"spawn_edge_inset"`  // Keep spawn y away from top/bottom
	CullMargin       float64 `yaml:"cull_margin"`       // Creature culled once x < -margin
	ProjectileMargin float64 `yaml:"projectile_margin"` // Projectile culled outside rect grown by this
}

// PhysicsConfig holds tick and spatial index parameters.
type PhysicsConfig struct {
	TicksPerSecond float64 `yaml:"ticks_per_second"`
	MaxFrameScale  float64 `yaml:"max_frame_scale"` // Upper bound on dt passed to Tick
	GridCellSize   float64 `yaml:"grid_cell_size"`
}

// CannonConfig holds projectile and auto-fire parameters.
type CannonConfig struct {
	ProjectileSpeed  float64 `yaml:"projectile_speed"`   // Units per tick
	HitRadiusFactor  float64 `yaml:"hit_radius_factor"`  // Hit when dist < factor * creature size
	AutoFireInterval int     `yaml:"auto_fire_interval"` // Ticks between auto shots
}

// EconomyConfig holds the starting balance and upgrade pricing.
type EconomyConfig struct {
	StartCoins   int64 `yaml:"start_coins"`
	StartBet     int   `yaml:"start_bet"`
	MaxBet       int   `yaml:"max_bet"`
	StartPower   int   `yaml:"start_power"`
	MaxPower     int   `yaml:"max_power"`
	CostPerLevel int64 `yaml:"cost_per_level"` // Upgrade cost = power * this
}

// WavesConfig holds wave duration and spawn cadence.
// Spawn interval (ticks) = max(spawn_floor, spawn_base - wave*spawn_step).
type WavesConfig struct {
	Duration   float64 `yaml:"duration"` // Ticks per wave
	SpawnBase  float64 `yaml:"spawn_base"`
	SpawnStep  float64 `yaml:"spawn_step"`
	SpawnFloor float64 `yaml:"spawn_floor"`
}

// RarityConfig is the gameplay template for one rarity tier.
// Visual templates live in the renderer, keyed by the same name.
type RarityConfig struct {
	Name        string  `yaml:"name"`
	BaseReward  int64   `yaml:"base_reward"`
	Multiplier  int64   `yaml:"multiplier"`
	Size        float64 `yaml:"size"`
	Health      int     `yaml:"health"`
	Speed       float64 `yaml:"speed"`        // Units per tick toward the cannon
	SpeedJitter float64 `yaml:"speed_jitter"` // Fractional +/- jitter
	Ability     string  `yaml:"ability"`      // "", area, chain, crowd_control, pull

	// Selection curve: p(w) = min(cap, base_prob + per_wave*(w-min_wave)) for w >= min_wave.
	MinWave  int     `yaml:"min_wave"`
	BaseProb float64 `yaml:"base_prob"`
	PerWave  float64 `yaml:"per_wave"`
	Cap      float64 `yaml:"cap"`
}

// EffectsConfig holds parameters for each special ability.
type EffectsConfig struct {
	Area   AreaConfig   `yaml:"area"`
	Chain  ChainConfig  `yaml:"chain"`
	Freeze FreezeConfig `yaml:"freeze"`
	Pull   PullConfig   `yaml:"pull"`
}

// AreaConfig holds explosion parameters.
type AreaConfig struct {
	Radius     float64 `yaml:"radius"`
	BaseDamage int     `yaml:"base_damage"`
	Knockback  float64 `yaml:"knockback"` // Displacement at the center, scaled by falloff
}

// ChainConfig holds lightning parameters.
// Damage on hop i = base_damage - decay*i.
type ChainConfig struct {
	LinkRange  float64 `yaml:"link_range"`
	BaseDamage int     `yaml:"base_damage"`
	Decay      int     `yaml:"decay"`
	MaxHops    int     `yaml:"max_hops"`
}

// FreezeConfig holds crowd-control parameters.
type FreezeConfig struct {
	SpeedScale float64 `yaml:"speed_scale"`
	Duration   int     `yaml:"duration"` // Ticks
}

// PullConfig holds gravity well parameters.
type PullConfig struct {
	Radius             float64 `yaml:"radius"`
	DeadZone           float64 `yaml:"dead_zone"`
	Force              float64 `yaml:"force"`    // Displacement per tick at the dead zone edge
	Duration           int     `yaml:"duration"` // Ticks
	CoreDamage         int     `yaml:"core_damage"`
	CoreDamageInterval int     `yaml:"core_damage_interval"` // Ticks between core damage pulses
}

// SwimConfig holds the creature wobble parameters.
type SwimConfig struct {
	WobbleAmplitude float64 `yaml:"wobble_amplitude"` // Max y displacement per tick
	WobbleFrequency float64 `yaml:"wobble_frequency"` // Noise time scale per tick
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	JackpotRarity       string  `yaml:"jackpot_rarity"`
	RTPSpikeMultiplier  float64 `yaml:"rtp_spike_multiplier"`
	WaveMilestone       int     `yaml:"wave_milestone"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CannonX     float64
	CannonY     float64
	ScreenW32   float32
	ScreenH32   float32
	RarityIndex map[string]int // name -> index into Rarity
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := cfg.Overlay(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Overlay unmarshals YAML on top of the current values.
// Only fields present in data are overwritten; a rarity list replaces the whole table.
func (c *Config) Overlay(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// PowerLimit is the highest cannon power any configuration may allow.
const PowerLimit = 10

// Validate reports the first configuration error found.
func (c *Config) Validate() error {
	e := c.Economy
	if e.StartCoins < 0 {
		return errors.New("economy.start_coins must be >= 0")
	}
	if e.MaxBet < 1 || e.StartBet < 1 || e.StartBet > e.MaxBet {
		return fmt.Errorf("economy: start_bet %d must be in [1, max_bet=%d]", e.StartBet, e.MaxBet)
	}
	if e.MaxPower < 1 || e.MaxPower > PowerLimit {
		return fmt.Errorf("economy.max_power %d must be in [1, %d]", e.MaxPower, PowerLimit)
	}
	if e.StartPower < 1 || e.StartPower > e.MaxPower {
		return fmt.Errorf("economy: start_power %d must be in [1, max_power=%d]", e.StartPower, e.MaxPower)
	}
	if e.CostPerLevel <= 0 {
		return errors.New("economy.cost_per_level must be > 0")
	}
	if c.Waves.Duration <= 0 {
		return errors.New("waves.duration must be > 0")
	}
	if c.Waves.SpawnFloor <= 0 {
		return errors.New("waves.spawn_floor must be > 0")
	}
	if c.Cannon.ProjectileSpeed <= 0 {
		return errors.New("cannon.projectile_speed must be > 0")
	}
	if c.Physics.GridCellSize <= 0 {
		return errors.New("physics.grid_cell_size must be > 0")
	}
	if err := c.Effects.validate(); err != nil {
		return err
	}
	return c.validateRarity()
}

func (e EffectsConfig) validate() error {
	if e.Area.Radius <= 0 || e.Area.BaseDamage < 0 || e.Area.Knockback < 0 {
		return errors.New("effects.area: radius must be > 0, damage and knockback >= 0")
	}
	if e.Chain.LinkRange <= 0 || e.Chain.MaxHops <= 0 {
		return errors.New("effects.chain: link_range and max_hops must be > 0")
	}
	if e.Chain.BaseDamage < 0 || e.Chain.Decay < 0 {
		return errors.New("effects.chain: base_damage and decay must be >= 0")
	}
	if e.Freeze.SpeedScale <= 0 || e.Freeze.SpeedScale > 1 {
		return fmt.Errorf("effects.freeze.speed_scale %v must be in (0, 1]", e.Freeze.SpeedScale)
	}
	if e.Freeze.Duration <= 0 {
		return errors.New("effects.freeze.duration must be > 0")
	}
	p := e.Pull
	if p.Radius <= 0 || p.DeadZone < 0 || p.DeadZone >= p.Radius {
		return fmt.Errorf("effects.pull: need 0 <= dead_zone (%v) < radius (%v)", p.DeadZone, p.Radius)
	}
	if p.Force < 0 || p.Duration <= 0 || p.CoreDamage < 0 || p.CoreDamageInterval <= 0 {
		return errors.New("effects.pull: force and core_damage must be >= 0, duration and core_damage_interval > 0")
	}
	return nil
}

// validateRarity checks the tier table is ordered common -> mythic and that every
// tier is strictly rarer than the one below it at every wave.
func (c *Config) validateRarity() error {
	if len(c.Rarity) != len(RarityNames) {
		return fmt.Errorf("rarity: expected %d tiers, got %d", len(RarityNames), len(c.Rarity))
	}
	var capSum float64
	for i, tier := range c.Rarity {
		if tier.Name != RarityNames[i] {
			return fmt.Errorf("rarity[%d]: expected %q, got %q", i, RarityNames[i], tier.Name)
		}
		if tier.Health <= 0 || tier.Size <= 0 {
			return fmt.Errorf("rarity %s: health and size must be > 0", tier.Name)
		}
		if tier.BaseReward < 0 || tier.Multiplier < 0 {
			return fmt.Errorf("rarity %s: reward and multiplier must be >= 0", tier.Name)
		}
		switch tier.Ability {
		case "", AbilityArea, AbilityChain, AbilityCrowdControl, AbilityPull:
		default:
			return fmt.Errorf("rarity %s: unknown ability %q", tier.Name, tier.Ability)
		}
		if i == 0 {
			// Common takes the remainder
			continue
		}
		if tier.BaseProb < 0 || tier.PerWave <= 0 || tier.Cap < tier.BaseProb {
			return fmt.Errorf("rarity %s: need 0 <= base_prob <= cap and per_wave > 0", tier.Name)
		}
		if tier.MinWave < 1 {
			return fmt.Errorf("rarity %s: min_wave must be >= 1", tier.Name)
		}
		capSum += tier.Cap
		if i >= 2 {
			below := c.Rarity[i-1]
			if tier.BaseProb >= below.BaseProb || tier.Cap >= below.Cap || tier.PerWave > below.PerWave {
				return fmt.Errorf("rarity %s: must be strictly rarer than %s", tier.Name, below.Name)
			}
			if tier.MinWave < below.MinWave {
				return fmt.Errorf("rarity %s: min_wave below %s", tier.Name, below.Name)
			}
		}
	}
	if capSum > 1 {
		return fmt.Errorf("rarity: caps sum to %.3f, must be <= 1", capSum)
	}
	if 1-capSum <= c.Rarity[1].Cap {
		return fmt.Errorf("rarity: common remainder %.3f must exceed rare cap %.3f", 1-capSum, c.Rarity[1].Cap)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.CannonX = c.Playfield.CannonX
	c.Derived.CannonY = c.Playfield.CannonY
	if c.Derived.CannonY == 0 {
		c.Derived.CannonY = c.Playfield.Height / 2
	}

	c.Derived.RarityIndex = make(map[string]int, len(c.Rarity))
	for i, tier := range c.Rarity {
		c.Derived.RarityIndex[tier.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
