// Package main provides headless training for the perceptron player:
// it plays games as fast as they compute, optionally pre-trains from
// recorded human rallies, and logs one CSV row per game.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/players"
	"github.com/pthm-cable/pong/telemetry"
)

func main() {
	// CLI flags
	games := flag.Int("games", 1000, "Number of games to play")
	opponent := flag.String("opponent", "computer", "Training opponent: computer or self")
	difficulty := flag.String("difficulty", "normal", "Computer opponent difficulty")
	imitate := flag.String("imitate", "", "Recorded-rally file to replay into the model before training")
	fresh := flag.Bool("fresh", false, "Discard any persisted model before training")
	outputDir := flag.String("output", "", "Output directory for training.csv and the config snapshot")
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *games <= 0 {
		log.Fatal("-games must be positive")
	}

	mode := game.Mode{Left: game.KindAI, Right: game.KindComputer}
	switch *opponent {
	case "computer":
	case "self":
		mode.Right = game.KindAI
	default:
		fmt.Fprintf(os.Stderr, "unknown opponent %q (want computer or self)\n", *opponent)
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
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		log.Fatalf("failed to write config snapshot: %v", err)
	}

	g, err := game.New(game.Options{
		Mode:       mode,
		Difficulty: parsedDifficulty,
		Seed:       rngSeed,
		Headless:   true,
		Fresh:      *fresh,
		MaxGames:   *games,
	})
	if err != nil {
		log.Fatalf("failed to set up training run: %v", err)
	}

	// Imitation pass before self-play.
	if *imitate != "" {
		rallies, err := telemetry.LoadRallies(*imitate)
		if err != nil {
			log.Fatalf("failed to load recorded rallies: %v", err)
		}
		trained := g.AIs()[0].LearnFromRallies(rallies)
		slog.Info("imitation pass complete", "rallies", len(rallies), "frames_learned", trained)
	}

	milestone := cfg.Telemetry.ProgressEvery
	if milestone <= 0 {
		milestone = *games / 10
		if milestone == 0 {
			milestone = 1
		}
	}

	g.SetGameEndHook(func(rec telemetry.TrainingRecord) {
		if err := om.WriteTraining(rec); err != nil {
			slog.Error("writing training record", "error", err)
		}
		if rec.Game%milestone == 0 {
			slog.Info("training progress",
				"games", rec.Game,
				"of", *games,
				"percent", rec.Game*100/(*games),
				"total_reward", rec.TotalReward,
			)
		}
	})

	slog.Info("starting training",
		"games", *games,
		"opponent", *opponent,
		"seed", rngSeed,
	)
	start := time.Now()

	for !g.Done() {
		g.UpdateHeadless()
	}

	g.Unload()
	slog.Info("training finished",
		"games", g.Match().GamesCompleted(),
		"ticks", g.Match().Tick(),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
}
