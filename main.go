package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/app"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	autoFire := flag.Bool("autofire", false, "Start with auto-fire enabled")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		AutoFire:       *autoFire || *headless,
	}

	if *headless {
		// Headless mode: pure CPU simulation at nominal dt, no raylib needed
		g := game.NewGameWithOptions(opts)
		defer g.Close()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			for range max(*stepsPerUpdate, 1) {
				g.Tick(1)
			}

			if *maxTicks > 0 && g.CurrentTick() >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.CurrentTick(), "coins", g.Economy().Coins, "run_id", g.RunID())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Reef")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.New(cfg, opts)
	host := app.New(g, app.Options{Title: "Reef", StepsPerUpdate: *stepsPerUpdate})
	defer host.Unload()

	for !rl.WindowShouldClose() {
		host.Update()
		host.Draw()

		if *maxTicks > 0 && g.CurrentTick() >= *maxTicks {
			break
		}
	}
}
