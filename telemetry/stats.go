package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Game state at window end
	Wave        int   `csv:"wave"`
	Coins       int64 `csv:"coins"`
	Bet         int   `csv:"bet"`
	Power       int   `csv:"power"`
	Creatures   int   `csv:"creatures"`
	Projectiles int   `csv:"projectiles"`

	// Economy
	Shots        int     `csv:"shots"`
	Hits         int     `csv:"hits"`
	HitRate      float64 `csv:"hit_rate"`
	CoinsSpent   int64   `csv:"coins_spent"`
	CoinsWon     int64   `csv:"coins_won"`
	RTP          float64 `csv:"rtp"` // coins won per coin bet
	Upgrades     int     `csv:"upgrades"`
	UpgradeSpend int64   `csv:"upgrade_spend"`

	// Population flow
	Spawns         int `csv:"spawns"`
	Culled         int `csv:"culled"`
	Kills          int `csv:"kills"`
	KillsCommon    int `csv:"kills_common"`
	KillsRare      int `csv:"kills_rare"`
	KillsEpic      int `csv:"kills_epic"`
	KillsLegendary int `csv:"kills_legendary"`
	KillsMythic    int `csv:"kills_mythic"`

	AreaEffects   int `csv:"area_effects"`
	ChainEffects  int `csv:"chain_effects"`
	FreezeEffects int `csv:"freeze_effects"`
	PullEffects   int `csv:"pull_effects"`

	// Health fraction of live creatures (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`

	// Ticks from spawn to death for creatures killed this window
	TimeToKillMean float64 `csv:"ttk_mean"`
	TimeToKillStd  float64 `csv:"ttk_std"`
	TimeToKillP50  float64 `csv:"ttk_p50"`
	TimeToKillP90  float64 `csv:"ttk_p90"`
}

// Summary describes a sample distribution.
type Summary struct {
	N    int
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// Summarize computes mean, sample standard deviation and empirical quantiles.
// The input is not modified. Returns the zero Summary for an empty sample.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		N:    n,
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("wave", s.Wave),
		slog.Int64("coins", s.Coins),
		slog.Int("bet", s.Bet),
		slog.Int("power", s.Power),
		slog.Int("creatures", s.Creatures),
		slog.Int("projectiles", s.Projectiles),
		slog.Int("shots", s.Shots),
		slog.Int("hits", s.Hits),
		slog.Float64("hit_rate", s.HitRate),
		slog.Int64("coins_spent", s.CoinsSpent),
		slog.Int64("coins_won", s.CoinsWon),
		slog.Float64("rtp", s.RTP),
		slog.Int("upgrades", s.Upgrades),
		slog.Int("spawns", s.Spawns),
		slog.Int("culled", s.Culled),
		slog.Int("kills", s.Kills),
		slog.Int("kills_mythic", s.KillsMythic),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("ttk_mean", s.TimeToKillMean),
		slog.Float64("ttk_p90", s.TimeToKillP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"wave", s.Wave,
		"coins", s.Coins,
		"bet", s.Bet,
		"power", s.Power,
		"creatures", s.Creatures,
		"projectiles", s.Projectiles,
		"shots", s.Shots,
		"hits", s.Hits,
		"hit_rate", s.HitRate,
		"coins_spent", s.CoinsSpent,
		"coins_won", s.CoinsWon,
		"rtp", s.RTP,
		"upgrades", s.Upgrades,
		"upgrade_spend", s.UpgradeSpend,
		"spawns", s.Spawns,
		"culled", s.Culled,
		"kills", s.Kills,
		"kills_common", s.KillsCommon,
		"kills_rare", s.KillsRare,
		"kills_epic", s.KillsEpic,
		"kills_legendary", s.KillsLegendary,
		"kills_mythic", s.KillsMythic,
		"area_effects", s.AreaEffects,
		"chain_effects", s.ChainEffects,
		"freeze_effects", s.FreezeEffects,
		"pull_effects", s.PullEffects,
		"health_mean", s.HealthMean,
		"health_p10", s.HealthP10,
		"health_p50", s.HealthP50,
		"health_p90", s.HealthP90,
		"ttk_mean", s.TimeToKillMean,
		"ttk_std", s.TimeToKillStd,
		"ttk_p50", s.TimeToKillP50,
		"ttk_p90", s.TimeToKillP90,
	)
}
