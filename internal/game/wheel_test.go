package game

import (
	"math"
	"testing"
)

func TestDefaultWheelProbabilitiesSumToOne(t *testing.T) {
	sum := 0.0
	for _, seg := range DefaultWheelSegments() {
		if seg.Probability < 0 {
			t.Fatalf("segment %d has negative probability", seg.ID)
		}
		sum += seg.Probability
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1.0", sum)
	}
}

func TestSpinAlwaysLandsOnASegment(t *testing.T) {
	for i := 0; i < 200; i++ {
		g := NewWheelGame()
		seg := g.Spin()
		if seg == nil {
			t.Fatal("spin returned nil segment")
		}
		if seg.Points <= 0 {
			t.Errorf("segment %d pays %d points; every prize must be positive", seg.ID, seg.Points)
		}
		if g.SpinAngle < 5*360 {
			t.Errorf("spin angle %v must include the animation rotations", g.SpinAngle)
		}
	}
}

func TestExpectedPoints(t *testing.T) {
	g := NewWheelGameWithSegments([]WheelSegment{
		{ID: 1, Points: 100, Probability: 0.5},
		{ID: 2, Points: 200, Probability: 0.5},
	})
	if got := g.ExpectedPoints(); math.Abs(got-150) > 1e-9 {
		t.Errorf("expected points = %v, want 150", got)
	}
}
