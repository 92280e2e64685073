// Package main tunes rarity rewards and health with CMA-ES so that
// auto-fire play returns a target share of coins bet.
package main

import (
	"math"

	"github.com/pthm-cable/reef/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
// The first half are per-tier base rewards, the second half per-tier health.
type ParamVector struct {
	Specs []ParamSpec
	tiers int
}

// NewParamVector builds reward and health specs for every tier in cfg.
// Defaults come from cfg; bounds span a quarter to four times the default.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{tiers: len(cfg.Rarity)}
	for _, tier := range cfg.Rarity {
		d := float64(tier.BaseReward)
		pv.Specs = append(pv.Specs, ParamSpec{
			Name:    tier.Name + "_reward",
			Path:    "rarity." + tier.Name + ".base_reward",
			Min:     max(1, d/4),
			Max:     max(2, d*4),
			Default: d,
		})
	}
	for _, tier := range cfg.Rarity {
		d := float64(tier.Health)
		pv.Specs = append(pv.Specs, ParamSpec{
			Name:    tier.Name + "_health",
			Path:    "rarity." + tier.Name + ".health",
			Min:     max(1, d/4),
			Max:     max(2, d*4),
			Default: d,
		})
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped, rounded values into the rarity table.
// cfg must have the same tier count the vector was built from.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i := range pv.tiers {
		cfg.Rarity[i].BaseReward = int64(math.Round(clamped[i]))
		cfg.Rarity[i].Health = int(math.Round(clamped[pv.tiers+i]))
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, 0, len(pv.Specs))
	for _, tier := range cfg.Rarity {
		v = append(v, float64(tier.BaseReward))
	}
	for _, tier := range cfg.Rarity {
		v = append(v, float64(tier.Health))
	}
	return v
}
