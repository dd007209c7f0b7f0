package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pong/config"
)

// TrainingRecord is one completed game of a training run.
type TrainingRecord struct {
	Game        int     `csv:"game"`
	Winner      string  `csv:"winner"`
	ScoreLeft   int     `csv:"score_left"`
	ScoreRight  int     `csv:"score_right"`
	HitsLeft    int     `csv:"hits_left"`
	HitsRight   int     `csv:"hits_right"`
	Ticks       int     `csv:"ticks"`
	GamesPlayed int     `csv:"games_played"`
	TotalReward float64 `csv:"total_reward"`
}

// OutputManager handles structured training output with CSV logging.
type OutputManager struct {
	dir          string
	trainingFile *os.File

	trainingHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled); all
// methods are nil-safe.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "training.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating training.csv: %w", err)
	}
	om.trainingFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTraining appends one game record to training.csv.
func (om *OutputManager) WriteTraining(rec TrainingRecord) error {
	if om == nil {
		return nil
	}

	records := []TrainingRecord{rec}

	if !om.trainingHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.trainingFile); err != nil {
			return fmt.Errorf("writing training record: %w", err)
		}
		om.trainingHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.trainingFile); err != nil {
			return fmt.Errorf("writing training record: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.trainingFile == nil {
		return nil
	}
	return om.trainingFile.Close()
}
