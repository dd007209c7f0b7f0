package neural

import (
	"math"
	"math/rand"
	"testing"
)

func testFeatures() Features {
	return Features{0.3, -0.5, 0.01, -0.02, 0.7, -0.1}
}

func TestDecideDeterministic(t *testing.T) {
	p := NewPerceptron(20, 0.02, rand.New(rand.NewSource(42)))
	f := testFeatures()

	up1, prob1 := p.Decide(f)
	up2, prob2 := p.Decide(f)

	if up1 != up2 || prob1 != prob2 {
		t.Errorf("repeated Decide diverged: (%v, %v) vs (%v, %v)", up1, prob1, up2, prob2)
	}
	if prob1 <= 0 || prob1 >= 1 {
		t.Errorf("probability = %v, want in (0, 1)", prob1)
	}
}

func TestLearnMovesTowardTarget(t *testing.T) {
	tests := []struct {
		name   string
		reward float64
		wantUp bool // probability should move up for positive reward
	}{
		{"positive reward reinforces", 0.1, true},
		{"negative reward suppresses", -0.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPerceptron(20, 0.02, rand.New(rand.NewSource(42)))
			f := testFeatures()

			_, before := p.Decide(f)
			p.Learn(tt.reward)
			_, after := p.Decide(f)

			if tt.wantUp && after <= before {
				t.Errorf("probability %v -> %v, want increase", before, after)
			}
			if !tt.wantUp && after >= before {
				t.Errorf("probability %v -> %v, want decrease", before, after)
			}
		})
	}
}

func TestLearnWithoutDecideIsNoop(t *testing.T) {
	p := NewPerceptron(20, 0.02, rand.New(rand.NewSource(42)))
	before := p.Snapshot()

	p.Learn(1.0)

	after := p.Snapshot()
	if p.TotalReward != 0 {
		t.Errorf("TotalReward = %v, want 0", p.TotalReward)
	}
	r, c := before.Weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if before.Weights.At(i, j) != after.Weights.At(i, j) {
				t.Fatalf("weight (%d,%d) changed without a prior decision", i, j)
			}
		}
	}
}

func TestLearnBroadcastsIdenticalColumnUpdates(t *testing.T) {
	p := NewPerceptron(20, 0.02, rand.New(rand.NewSource(42)))
	f := testFeatures()

	before := p.Snapshot()
	p.Decide(f)
	p.Learn(0.1)

	// Every hidden column receives the same rank-1 delta.
	for i := 0; i < NumFeatures; i++ {
		d0 := p.weights.At(i, 0) - before.Weights.At(i, 0)
		for j := 1; j < p.hiddenNodes; j++ {
			dj := p.weights.At(i, j) - before.Weights.At(i, j)
			if math.Abs(dj-d0) > epsilon {
				t.Fatalf("row %d: column %d delta %v differs from column 0 delta %v", i, j, dj, d0)
			}
		}
	}
}

func TestLearnAccumulatesReward(t *testing.T) {
	p := NewPerceptron(20, 0.02, rand.New(rand.NewSource(42)))
	f := testFeatures()

	p.Decide(f)
	p.Learn(0.1)
	p.Decide(f)
	p.Learn(10.0)

	if math.Abs(p.TotalReward-10.1) > epsilon {
		t.Errorf("TotalReward = %v, want 10.1", p.TotalReward)
	}
}

func TestSetLastSubstitutesDecision(t *testing.T) {
	p := NewPerceptron(20, 0.02, rand.New(rand.NewSource(42)))
	f := testFeatures()

	// A recorded "moved up" frame is fed in as a near-certain decision,
	// so Learn pulls toward reproducing it.
	p.SetLast(f, 0.9)
	p.Learn(0.1)

	if p.TotalReward == 0 {
		t.Error("Learn after SetLast did not apply")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	src := NewPerceptron(20, 0.02, rand.New(rand.NewSource(42)))
	src.GamesPlayed = 7
	src.TotalReward = 12.5
	f := testFeatures()
	_, want := src.Decide(f)

	dst := NewPerceptron(20, 0.02, rand.New(rand.NewSource(99)))
	dst.Restore(src.Snapshot())

	_, got := dst.Decide(f)
	if got != want {
		t.Errorf("restored probability = %v, want %v", got, want)
	}
	if dst.GamesPlayed != 7 || dst.TotalReward != 12.5 {
		t.Errorf("stats = (%d, %v), want (7, 12.5)", dst.GamesPlayed, dst.TotalReward)
	}
}

func TestRestoreRejectsMismatchedShape(t *testing.T) {
	src := NewPerceptron(10, 0.02, rand.New(rand.NewSource(1)))
	dst := NewPerceptron(20, 0.02, rand.New(rand.NewSource(2)))
	f := testFeatures()
	_, want := dst.Decide(f)

	dst.Restore(src.Snapshot())

	_, got := dst.Decide(f)
	if got != want {
		t.Errorf("mismatched restore changed the weights: %v -> %v", want, got)
	}
}

func TestNewPerceptronDefaults(t *testing.T) {
	p := NewPerceptron(0, 0, rand.New(rand.NewSource(1)))
	if p.HiddenNodes() != DefaultHiddenNodes {
		t.Errorf("hidden nodes = %d, want %d", p.HiddenNodes(), DefaultHiddenNodes)
	}
	if p.learningRate != DefaultLearningRate {
		t.Errorf("learning rate = %v, want %v", p.learningRate, DefaultLearningRate)
	}
}
