// Package game hosts a match inside a raylib window: it owns the frame
// loop glue, keyboard handling, rendering, and the wiring between the
// configured player kinds and the match core.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/match"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/players"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/ui"
)

// PlayerKind selects a controller implementation for one side.
type PlayerKind int

const (
	KindHuman PlayerKind = iota
	KindComputer
	KindAI
)

// Mode pairs the controller kinds for the two sides.
type Mode struct {
	Left  PlayerKind
	Right PlayerKind
}

// ParseMode maps a CLI mode string like "human-computer" to a Mode.
func ParseMode(s string) (Mode, error) {
	kinds := map[string]PlayerKind{
		"human":    KindHuman,
		"computer": KindComputer,
		"ai":       KindAI,
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Mode{}, fmt.Errorf("mode %q is not of the form left-right (e.g. human-computer)", s)
	}
	left, ok := kinds[parts[0]]
	if !ok {
		return Mode{}, fmt.Errorf("unknown player kind %q (want human, computer or ai)", parts[0])
	}
	right, ok := kinds[parts[1]]
	if !ok {
		return Mode{}, fmt.Errorf("unknown player kind %q (want human, computer or ai)", parts[1])
	}
	return Mode{Left: left, Right: right}, nil
}

// Options configures a game.
type Options struct {
	Mode           Mode
	Difficulty     players.Difficulty
	Seed           int64
	Headless       bool
	Record         bool // record rallies to the configured games file
	Fresh          bool // discard persisted AI models before starting
	MaxGames       int  // 0 = unlimited
	StepsPerUpdate int
}

// Default key bindings: P1 on W/S, P2 on the arrow keys.
const (
	P1UpKey   = rl.KeyW
	P1DownKey = rl.KeyS
	P2UpKey   = rl.KeyUp
	P2DownKey = rl.KeyDown
)

// Game owns a match plus its window-facing collaborators.
type Game struct {
	cfg   *config.Config
	opts  Options
	m     *match.Match
	rng   *rand.Rand
	clock *match.LogicalClock

	recorder *telemetry.Recorder
	ais      []*players.AI

	hud      *ui.HUD
	overlay  *ui.Overlay
	settings ui.OverlaySettings

	onGameEnd    GameEndHook
	gameReported bool
	lastGameTick int
}

// GameEndHook receives a summary record for each completed game.
type GameEndHook func(telemetry.TrainingRecord)

// New builds a fully wired game from the global config and opts.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()

	if opts.Headless && (opts.Mode.Left == KindHuman || opts.Mode.Right == KindHuman) {
		return nil, fmt.Errorf("human players need a window; drop -headless or change -mode")
	}
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	field := court.Playfield{
		Width:        float64(cfg.Screen.Width),
		Height:       float64(cfg.Screen.Height),
		HeaderHeight: float64(cfg.Screen.HeaderHeight),
	}
	ball := court.NewBall(field,
		cfg.Ball.Size, cfg.Ball.BaseSpeed, cfg.Ball.MaxSpeed, cfg.Ball.SpeedIncrement, rng)
	leftPaddle := court.NewPaddle(field, court.SideLeft,
		cfg.Derived.LeftX, cfg.Paddle.Width, cfg.Paddle.Height, cfg.Paddle.Speed)
	rightPaddle := court.NewPaddle(field, court.SideRight,
		cfg.Derived.RightX, cfg.Paddle.Width, cfg.Paddle.Height, cfg.Paddle.Speed)

	// Logical tick clock: reaction delays track simulation time, so
	// speeding the simulation up speeds the computer up with it.
	dt := time.Second / time.Duration(cfg.Screen.TargetFPS)
	clock := match.NewLogicalClock(dt)

	g := &Game{
		cfg:     cfg,
		opts:    opts,
		rng:     rng,
		clock:   clock,
		hud:     ui.NewHUD(),
		overlay: ui.NewOverlay(),
		settings: ui.OverlaySettings{
			StepsPerUpdate: opts.StepsPerUpdate,
		},
	}

	left, err := g.buildPlayer(opts.Mode.Left, leftPaddle, ball)
	if err != nil {
		return nil, err
	}
	right, err := g.buildPlayer(opts.Mode.Right, rightPaddle, ball)
	if err != nil {
		return nil, err
	}

	if opts.Record {
		g.recorder = telemetry.NewRecorder()
	}

	g.m = match.New(match.Options{
		Field:      field,
		Ball:       ball,
		Left:       left,
		Right:      right,
		Encoder:    neural.NewStateEncoder(field, cfg.Ball.Size, cfg.Paddle.Height),
		Score:      match.NewScore(cfg.Match.PointsToWin, cfg.Match.WinByTwo),
		Clock:      clock.Now,
		ResetDelay: time.Duration(cfg.Match.ResetDelayMs) * time.Millisecond,
		Headless:   opts.Headless,
		Recorder:   g.recorder,
	})

	return g, nil
}

// buildPlayer constructs one side's controller.
func (g *Game) buildPlayer(kind PlayerKind, paddle *court.Paddle, ball *court.Ball) (players.Player, error) {
	switch kind {
	case KindHuman:
		up, down := int32(P1UpKey), int32(P1DownKey)
		if paddle.Side == court.SideRight {
			up, down = int32(P2UpKey), int32(P2DownKey)
		}
		return players.NewHuman(paddle, raylibKeys{}, up, down), nil

	case KindComputer:
		difficulty := [...]string{"easy", "normal", "hard"}[g.opts.Difficulty]
		lo, hi, _ := g.cfg.ReactionRange(difficulty)
		return players.NewComputer(paddle, ball, g.clock.Now, lo, hi, g.cfg.Computer.Deadzone, g.rng), nil

	case KindAI:
		store := g.modelStore(paddle.Side)
		if g.opts.Fresh {
			if err := store.Delete(); err != nil {
				return nil, fmt.Errorf("discarding persisted model: %w", err)
			}
			slog.Info("discarded persisted model", "side", paddle.Side)
		}
		ai := players.NewAI(paddle, ball,
			g.cfg.AI.HiddenNodes, g.cfg.AI.LearningRate, store, g.rng)
		g.ais = append(g.ais, ai)
		return ai, nil
	}
	return nil, fmt.Errorf("unknown player kind %d", kind)
}

// modelStore returns the per-side persistence paths. The left side keeps
// the plain configured names; the right side gets a prefixed pair so two
// AI players don't clobber each other.
func (g *Game) modelStore(side court.Side) *neural.FileModelStore {
	weights, stats := g.cfg.AI.WeightsFile, g.cfg.AI.StatsFile
	if side == court.SideRight {
		weights, stats = "right_"+weights, "right_"+stats
	}
	return neural.NewFileModelStore(weights, stats)
}

// Match returns the underlying match.
func (g *Game) Match() *match.Match { return g.m }

// Recorder returns the rally recorder, or nil when recording is off.
func (g *Game) Recorder() *telemetry.Recorder { return g.recorder }

// AIs returns the AI players, if any (left first when both sides are AI).
func (g *Game) AIs() []*players.AI { return g.ais }

// SetGameEndHook installs a callback invoked once per completed game.
func (g *Game) SetGameEndHook(fn GameEndHook) { g.onGameEnd = fn }

// Done reports whether the configured game budget is exhausted.
func (g *Game) Done() bool {
	return g.opts.MaxGames > 0 && g.m.GamesCompleted() >= g.opts.MaxGames
}

// Update runs one rendered frame's worth of simulation: input, then
// StepsPerUpdate match ticks.
func (g *Game) Update() {
	g.handleInput()

	if g.settings.NewGame {
		g.settings.NewGame = false
		if _, over := g.m.Winner(); over {
			g.m.ResetGame()
		}
	}

	if g.settings.Paused {
		return
	}

	for i := 0; i < g.settings.StepsPerUpdate; i++ {
		g.m.Step()
		g.clock.Advance()
	}
	g.noteGameEnd()
}

// UpdateHeadless runs one match tick and rolls straight into the next
// game when one finishes, until MaxGames is reached.
func (g *Game) UpdateHeadless() {
	g.m.Step()
	g.clock.Advance()
	g.noteGameEnd()

	if _, over := g.m.Winner(); over && !g.Done() {
		g.m.ResetGame()
	}
}

// noteGameEnd fires the game-end hook exactly once per completed game.
func (g *Game) noteGameEnd() {
	winner, over := g.m.Winner()
	if !over {
		g.gameReported = false
		return
	}
	if g.gameReported {
		return
	}
	g.gameReported = true

	if g.onGameEnd == nil {
		return
	}
	rec := telemetry.TrainingRecord{
		Game:       g.m.GamesCompleted(),
		Winner:     winner.String(),
		ScoreLeft:  g.m.Score().Left,
		ScoreRight: g.m.Score().Right,
		HitsLeft:   g.m.Score().HitsLeft,
		HitsRight:  g.m.Score().HitsRight,
		Ticks:      g.m.Tick() - g.lastGameTick,
	}
	if len(g.ais) > 0 {
		rec.GamesPlayed = g.ais[0].Brain().GamesPlayed
		rec.TotalReward = g.ais[0].Brain().TotalReward
	}
	g.lastGameTick = g.m.Tick()
	g.onGameEnd(rec)
}

// Unload persists AI models and flushes any recorded rallies.
func (g *Game) Unload() {
	for _, ai := range g.ais {
		if err := ai.Save(); err != nil {
			slog.Error("saving model", "side", ai.Paddle().Side, "error", err)
		} else {
			slog.Info("saved model",
				"side", ai.Paddle().Side,
				"games_played", ai.Brain().GamesPlayed,
				"total_reward", ai.Brain().TotalReward,
			)
		}
	}
	if g.recorder != nil {
		if err := g.recorder.Append(g.cfg.AI.GamesFile); err != nil {
			slog.Error("saving recorded rallies", "error", err)
		}
	}
}

// raylibKeys adapts raylib's keyboard state to the players.KeyState
// capability.
type raylibKeys struct{}

func (raylibKeys) IsDown(key int32) bool {
	return rl.IsKeyDown(key)
}
