package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/players"
)

func main() {
	// CLI flags
	mode := flag.String("mode", "human-computer", "Player pairing: {human,computer,ai}-{human,computer,ai}")
	difficulty := flag.String("difficulty", "normal", "Computer difficulty: easy, normal or hard")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics (for training)")
	maxGames := flag.Int("max-games", 0, "Stop after N games (0 = unlimited)")
	record := flag.Bool("record", false, "Record rallies for AI training")
	fresh := flag.Bool("fresh", false, "Delete persisted AI model files before starting")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Match ticks per rendered frame (higher = faster)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	parsedMode, err := game.ParseMode(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	parsedDifficulty, err := players.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

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
		Mode:           parsedMode,
		Difficulty:     parsedDifficulty,
		Seed:           rngSeed,
		Headless:       *headless,
		Record:         *record,
		Fresh:          *fresh,
		MaxGames:       *maxGames,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.New(opts)
		if err != nil {
			slog.Error("failed to start game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"mode", *mode,
			"seed", rngSeed,
			"max_games", *maxGames,
		)

		for !g.Done() {
			g.UpdateHeadless()
		}
		slog.Info("headless run finished", "games", g.Match().GamesCompleted())
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Pong")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(opts)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting game", "mode", *mode, "difficulty", *difficulty, "seed", rngSeed)

	for !rl.WindowShouldClose() && !g.Done() {
		g.Update()
		g.Draw()
	}
}
