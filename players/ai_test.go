package players

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/pong/court"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/telemetry"
)

const eps = 1e-9

func testAI(store neural.ModelStore, seed int64) *AI {
	field := court.Playfield{Width: 800, Height: 600, HeaderHeight: 60}
	rng := rand.New(rand.NewSource(seed))
	ball := court.NewBall(field, 15, 5, 15, 0.5, rng)
	paddle := court.NewPaddle(field, court.SideLeft, 50, 15, 90, 5)
	return NewAI(paddle, ball, 20, 0.02, store, rng)
}

func testFeatures() neural.Features {
	return neural.Features{0.3, -0.5, 0.01, -0.02, 0.7, -0.1}
}

func boolPtr(b bool) *bool { return &b }

func TestAIUpdateMovesPaddle(t *testing.T) {
	a := testAI(nil, 42)
	start := a.Paddle().Y()

	a.Update(testFeatures())

	if d := math.Abs(a.Paddle().Y() - start); d != 5 {
		t.Errorf("paddle moved %v, want one speed step of 5", d)
	}
}

func TestAIContactReward(t *testing.T) {
	a := testAI(nil, 42)

	// Ball starts at center: no contact, no reward.
	a.Update(testFeatures())
	if a.Brain().TotalReward != 0 {
		t.Fatalf("TotalReward = %v without contact, want 0", a.Brain().TotalReward)
	}

	// Park the ball on the paddle: every tick of contact pays out.
	b := a.ball
	b.X = a.Paddle().X
	b.Y = a.Paddle().Y() + 30
	a.Update(testFeatures())
	a.Update(testFeatures())

	if got := a.Brain().TotalReward; math.Abs(got-2*ContactReward) > eps {
		t.Errorf("TotalReward = %v, want %v", got, 2*ContactReward)
	}
}

func TestAIMatchEndRewards(t *testing.T) {
	tests := []struct {
		name       string
		won        bool
		rallyHits  int
		wantReward float64
	}{
		{"win after a rally", true, 3, BigWinReward},
		{"win at the threshold", true, 2, BigWinReward},
		{"cheap win", true, 1, WinReward},
		{"win without hits", true, 0, WinReward},
		{"loss earns nothing", false, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAI(nil, 42)
			a.Update(testFeatures()) // prime the last decision

			a.OnMatchEnd(tt.won, tt.rallyHits)

			if a.Brain().GamesPlayed != 1 {
				t.Errorf("GamesPlayed = %d, want 1", a.Brain().GamesPlayed)
			}
			if got := a.Brain().TotalReward; math.Abs(got-tt.wantReward) > eps {
				t.Errorf("TotalReward = %v, want %v", got, tt.wantReward)
			}
		})
	}
}

func TestAIPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := neural.NewFileModelStore(
		filepath.Join(dir, "weights.json"),
		filepath.Join(dir, "stats.json"),
	)
	f := testFeatures()

	a1 := testAI(store, 42)
	up1, prob1 := a1.Brain().Decide(f)
	if err := a1.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A differently seeded instance restores the persisted weights and
	// must reproduce the decision exactly.
	a2 := testAI(store, 999)
	up2, prob2 := a2.Brain().Decide(f)

	if up1 != up2 || prob1 != prob2 {
		t.Errorf("restored decision = (%v, %v), want (%v, %v)", up2, prob2, up1, prob1)
	}
}

func TestAICorruptModelStartsFresh(t *testing.T) {
	dir := t.TempDir()
	weights := filepath.Join(dir, "weights.json")
	if err := os.WriteFile(weights, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	store := neural.NewFileModelStore(weights, filepath.Join(dir, "stats.json"))

	a := testAI(store, 42)

	if a.Brain().GamesPlayed != 0 {
		t.Errorf("GamesPlayed = %d, want fresh model", a.Brain().GamesPlayed)
	}
	a.Update(testFeatures()) // still functional
}

func TestAILearnFromRallies(t *testing.T) {
	goodState := []float64(testFeatures())

	rallies := []telemetry.Rally{
		{
			// Too short: a serve that scored immediately teaches nothing.
			LeftHits: 1,
			Frames: []telemetry.Frame{
				{State: goodState, LeftHitBall: true, LeftMovedUp: boolPtr(true)},
			},
		},
		{
			LeftHits:  1,
			RightHits: 1,
			Frames: []telemetry.Frame{
				{State: goodState, LeftHitBall: true, LeftMovedUp: boolPtr(true)},
				{State: goodState, RightHitBall: true, RightMovedUp: boolPtr(false)},
				// Hit without movement carries no direction to imitate.
				{State: goodState, LeftHitBall: true},
				// Wrong encoder shape.
				{State: []float64{1, 2}, LeftHitBall: true, LeftMovedUp: boolPtr(true)},
				// No hit at all.
				{State: goodState, LeftMovedUp: boolPtr(true)},
			},
		},
	}

	a := testAI(nil, 42)
	trained := a.LearnFromRallies(rallies)

	if trained != 2 {
		t.Errorf("trained = %d frames, want 2", trained)
	}
	if got := a.Brain().TotalReward; math.Abs(got-2*ContactReward) > eps {
		t.Errorf("TotalReward = %v, want %v", got, 2*ContactReward)
	}
}

func TestAISaveWithoutStore(t *testing.T) {
	a := testAI(nil, 42)
	if err := a.Save(); err != nil {
		t.Errorf("Save without a store: %v", err)
	}
}
