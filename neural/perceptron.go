// Package neural provides the trainable single-layer perceptron that
// drives the AI paddle, the feature encoder feeding it, and model
// persistence.
package neural

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Default perceptron hyperparameters.
const (
	DefaultHiddenNodes  = 20
	DefaultLearningRate = 0.02
)

// Perceptron is a single hidden layer of sigmoid units whose mean
// activation is thresholded into an up/down decision.
//
// The gradient step in Learn applies the identical update to every
// hidden column. That is not true backpropagation - all hidden units
// receive the same signal and stay redundant - but it is the behavior
// the model was trained under, so it is preserved as-is.
type Perceptron struct {
	weights      *mat.Dense // NumFeatures x hiddenNodes
	hiddenNodes  int
	learningRate float64

	// Scalar training stats, persisted alongside the weights.
	GamesPlayed int
	TotalReward float64

	lastFeatures Features
	lastProb     float64
	hasLast      bool
}

// NewPerceptron creates a perceptron with scaled-normal initial weights
// (N(0,1) * sqrt(2/NumFeatures)) drawn from rng.
func NewPerceptron(hiddenNodes int, learningRate float64, rng *rand.Rand) *Perceptron {
	if hiddenNodes <= 0 {
		hiddenNodes = DefaultHiddenNodes
	}
	if learningRate <= 0 {
		learningRate = DefaultLearningRate
	}

	scale := math.Sqrt(2.0 / float64(NumFeatures))
	data := make([]float64, NumFeatures*hiddenNodes)
	for i := range data {
		data[i] = rng.NormFloat64() * scale
	}

	return &Perceptron{
		weights:      mat.NewDense(NumFeatures, hiddenNodes, data),
		hiddenNodes:  hiddenNodes,
		learningRate: learningRate,
	}
}

// HiddenNodes returns the hidden layer width.
func (p *Perceptron) HiddenNodes() int { return p.hiddenNodes }

// Decide runs the forward pass: hidden = sigmoid(f . W), probability =
// mean(hidden), move up when probability > 0.5. The features and
// probability are retained for the next Learn call.
func (p *Perceptron) Decide(f Features) (moveUp bool, probability float64) {
	fv := mat.NewVecDense(NumFeatures, append([]float64(nil), f...))

	var hidden mat.VecDense
	hidden.MulVec(p.weights.T(), fv)

	sum := 0.0
	for j := 0; j < p.hiddenNodes; j++ {
		sum += sigmoid(hidden.AtVec(j))
	}
	probability = sum / float64(p.hiddenNodes)

	p.lastFeatures = append(p.lastFeatures[:0], f...)
	p.lastProb = probability
	p.hasLast = true

	return probability > 0.5, probability
}

// SetLast overrides the retained state/probability pair, substituting a
// recorded action for the network's own. Used when replaying recorded
// rallies: the recorded direction becomes the "decision" Learn pushes
// the weights toward.
func (p *Perceptron) SetLast(f Features, probability float64) {
	p.lastFeatures = append(p.lastFeatures[:0], f...)
	p.lastProb = probability
	p.hasLast = true
}

// Learn nudges the weights toward reproducing the last decision when
// reward is positive, away from it otherwise. No-op if Decide (or
// SetLast) has not run since construction or Restore.
func (p *Perceptron) Learn(reward float64) {
	if !p.hasLast {
		return
	}

	target := 0.0
	if reward > 0 {
		target = 1.0
	}
	err := target - p.lastProb
	gradient := err * p.lastProb * (1 - p.lastProb)

	// Broadcast the same rank-1 update into every hidden column.
	fv := mat.NewVecDense(NumFeatures, append([]float64(nil), p.lastFeatures...))
	ones := mat.NewVecDense(p.hiddenNodes, nil)
	for j := 0; j < p.hiddenNodes; j++ {
		ones.SetVec(j, 1)
	}

	var delta mat.Dense
	delta.Outer(p.learningRate*gradient, fv, ones)
	p.weights.Add(p.weights, &delta)

	p.TotalReward += reward
}

// Snapshot copies the current weights and stats into a Model for
// persistence.
func (p *Perceptron) Snapshot() *Model {
	return &Model{
		Weights:     mat.DenseCopyOf(p.weights),
		GamesPlayed: p.GamesPlayed,
		TotalReward: p.TotalReward,
	}
}

// Restore replaces the weights and stats with a loaded model. Models
// with a mismatched shape are ignored and the current weights kept.
func (p *Perceptron) Restore(m *Model) {
	if m == nil || m.Weights == nil {
		return
	}
	rows, cols := m.Weights.Dims()
	if rows != NumFeatures || cols != p.hiddenNodes {
		return
	}
	p.weights = mat.DenseCopyOf(m.Weights)
	p.GamesPlayed = m.GamesPlayed
	p.TotalReward = m.TotalReward
	p.hasLast = false
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
