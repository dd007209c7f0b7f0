// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Ball      BallConfig      `yaml:"ball"`
	Match     MatchConfig     `yaml:"match"`
	Computer  ComputerConfig  `yaml:"computer"`
	AI        AIConfig        `yaml:"ai"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// The header band at the top of the window holds the score display
// and is excluded from the play area.
type ScreenConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	HeaderHeight int `yaml:"header_height"`
	TargetFPS    int `yaml:"target_fps"`
}

// PaddleConfig holds paddle geometry and movement parameters.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // pixels per tick while a key is held
	Inset  float64 `yaml:"inset"` // distance from the paddle's wall
}

// BallConfig holds ball geometry and speed-ramp parameters.
type BallConfig struct {
	Size           float64 `yaml:"size"`
	BaseSpeed      float64 `yaml:"base_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // added on every paddle hit
}

// MatchConfig holds scoring and round sequencing parameters.
type MatchConfig struct {
	PointsToWin  int  `yaml:"points_to_win"`
	WinByTwo     bool `yaml:"win_by_two"`
	ResetDelayMs int  `yaml:"reset_delay_ms"` // pause between a point and the next serve
}

// ComputerConfig holds rule-based controller parameters.
// Reaction delay is sampled once per controller from the difficulty's range.
type ComputerConfig struct {
	Deadzone       float64 `yaml:"deadzone"` // no movement while the center gap is below this
	EasyReaction   [2]int  `yaml:"easy_reaction_ms"`
	NormalReaction [2]int  `yaml:"normal_reaction_ms"`
	HardReaction   [2]int  `yaml:"hard_reaction_ms"`
}

// AIConfig holds perceptron controller parameters and persistence paths.
type AIConfig struct {
	HiddenNodes  int     `yaml:"hidden_nodes"`
	LearningRate float64 `yaml:"learning_rate"`
	WeightsFile  string  `yaml:"weights_file"`
	StatsFile    string  `yaml:"stats_file"`
	GamesFile    string  `yaml:"games_file"` // recorded human rallies
}

// TelemetryConfig holds training output settings.
type TelemetryConfig struct {
	ProgressEvery int `yaml:"progress_every"` // progress log interval in games (0 = 10% milestones)
}

// DerivedConfig holds values computed from loaded config.
type DerivedConfig struct {
	PlayTop    float64 // top of the play area (below the header band)
	PlayBottom float64 // bottom of the play area
	LeftX      float64 // left paddle x
	RightX     float64 // right paddle x
}

var global *Config

// Init loads configuration and stores it as the global config.
// Pass an empty path to use embedded defaults only.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global config. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads configuration from embedded defaults, overlaid with the
// user file at path if non-empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PlayTop = float64(c.Screen.HeaderHeight)
	c.Derived.PlayBottom = float64(c.Screen.Height)
	c.Derived.LeftX = c.Paddle.Inset
	c.Derived.RightX = float64(c.Screen.Width) - c.Paddle.Inset - c.Paddle.Width
}

// ReactionRange returns the reaction delay range in milliseconds for a
// difficulty name. Unknown names return ok=false.
func (c *Config) ReactionRange(difficulty string) (lo, hi int, ok bool) {
	switch difficulty {
	case "easy":
		return c.Computer.EasyReaction[0], c.Computer.EasyReaction[1], true
	case "normal":
		return c.Computer.NormalReaction[0], c.Computer.NormalReaction[1], true
	case "hard":
		return c.Computer.HardReaction[0], c.Computer.HardReaction[1], true
	}
	return 0, 0, false
}

// WriteYAML saves the config to a YAML file.
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
