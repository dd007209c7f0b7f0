package neural

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Model is the persistable part of a perceptron: the weight matrix plus
// the scalar training stats.
type Model struct {
	Weights     *mat.Dense
	GamesPlayed int
	TotalReward float64
}

// ModelStore loads and saves models. A Load returning (nil, nil) means
// no model exists yet and the caller should start from fresh random
// weights.
type ModelStore interface {
	Load() (*Model, error)
	Save(*Model) error
}

// weightsBlob is the on-disk weight format: the matrix flattened
// row-major with its shape.
type weightsBlob struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// statsBlob is the on-disk stats format.
type statsBlob struct {
	GamesPlayed int     `json:"games_played"`
	TotalReward float64 `json:"total_reward"`
}

// FileModelStore persists a model as two files: a flat JSON weight
// array and a small stats record.
type FileModelStore struct {
	WeightsPath string
	StatsPath   string
}

// NewFileModelStore creates a store backed by the two given paths.
func NewFileModelStore(weightsPath, statsPath string) *FileModelStore {
	return &FileModelStore{WeightsPath: weightsPath, StatsPath: statsPath}
}

// Load reads the persisted model. A missing weights file yields
// (nil, nil). A corrupt weights file yields (nil, err) so the caller can
// warn and fall back to fresh initialization; it is never fatal. Stats
// are optional - a missing or corrupt stats file loads as zeros.
func (s *FileModelStore) Load() (*Model, error) {
	data, err := os.ReadFile(s.WeightsPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading weights: %w", err)
	}

	var blob weightsBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("parsing weights: %w", err)
	}
	if blob.Rows <= 0 || blob.Cols <= 0 || len(blob.Data) != blob.Rows*blob.Cols {
		return nil, fmt.Errorf("weights blob shape %dx%d does not match %d values",
			blob.Rows, blob.Cols, len(blob.Data))
	}

	m := &Model{Weights: mat.NewDense(blob.Rows, blob.Cols, blob.Data)}

	if data, err := os.ReadFile(s.StatsPath); err == nil {
		var stats statsBlob
		if err := json.Unmarshal(data, &stats); err == nil {
			m.GamesPlayed = stats.GamesPlayed
			m.TotalReward = stats.TotalReward
		}
	}

	return m, nil
}

// Save writes both artifacts.
func (s *FileModelStore) Save(m *Model) error {
	rows, cols := m.Weights.Dims()
	blob := weightsBlob{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, 0, rows*cols),
	}
	for i := 0; i < rows; i++ {
		blob.Data = append(blob.Data, m.Weights.RawRowView(i)...)
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("marshaling weights: %w", err)
	}
	if err := os.WriteFile(s.WeightsPath, data, 0644); err != nil {
		return fmt.Errorf("writing weights: %w", err)
	}

	data, err = json.Marshal(statsBlob{
		GamesPlayed: m.GamesPlayed,
		TotalReward: m.TotalReward,
	})
	if err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}
	if err := os.WriteFile(s.StatsPath, data, 0644); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}

	return nil
}

// Delete removes both persisted artifacts. Missing files are not an
// error.
func (s *FileModelStore) Delete() error {
	if err := os.Remove(s.WeightsPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing weights: %w", err)
	}
	if err := os.Remove(s.StatsPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stats: %w", err)
	}
	return nil
}
