package game

import (
	"crypto/rand"
	"math/big"
)

// WheelSegment is a single prize segment on the bonus wheel.
type WheelSegment struct {
	ID          int     `json:"id"`
	Points      int64   `json:"points"`
	Color       string  `json:"color"`
	Probability float64 `json:"probability"` // 0.0 - 1.0
	Label       string  `json:"label"`
}

// WheelGame is one spin of the points prize wheel.
type WheelGame struct {
	Segments  []WheelSegment `json:"segments"`
	Result    *WheelSegment  `json:"result"`
	SpinAngle float64        `json:"spin_angle"` // final angle for frontend animation
}

// DefaultWheelSegments is the standard prize layout. Probabilities sum to 1.
func DefaultWheelSegments() []WheelSegment {
	return []WheelSegment{
		{ID: 1, Points: 10, Color: "#4a4a4a", Probability: 0.30, Label: "10"},
		{ID: 2, Points: 25, Color: "#e74c3c", Probability: 0.25, Label: "25"},
		{ID: 3, Points: 50, Color: "#f39c12", Probability: 0.22, Label: "50"},
		{ID: 4, Points: 100, Color: "#2ecc71", Probability: 0.09, Label: "100"},
		{ID: 5, Points: 200, Color: "#3498db", Probability: 0.06, Label: "200"},
		{ID: 6, Points: 350, Color: "#9b59b6", Probability: 0.035, Label: "350"},
		{ID: 7, Points: 500, Color: "#e67e22", Probability: 0.025, Label: "500"},
		{ID: 8, Points: 1000, Color: "#f1c40f", Probability: 0.02, Label: "1000"},
	}
}

func NewWheelGame() *WheelGame {
	return &WheelGame{
		Segments: DefaultWheelSegments(),
	}
}

func NewWheelGameWithSegments(segments []WheelSegment) *WheelGame {
	return &WheelGame{
		Segments: segments,
	}
}

// Spin picks the winning segment from the CSPRNG and computes the animation
// angle.
func (g *WheelGame) Spin() *WheelSegment {
	max := big.NewInt(1000000) // 0.000001 precision
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		n = big.NewInt(500000)
	}

	random := float64(n.Int64()) / 1000000.0 // 0.0 - 0.999999

	cumulative := 0.0
	for i := range g.Segments {
		cumulative += g.Segments[i].Probability
		if random < cumulative {
			g.Result = &g.Segments[i]
			break
		}
	}

	// rounding can leave a sliver past the last cumulative bound
	if g.Result == nil {
		g.Result = &g.Segments[len(g.Segments)-1]
	}

	segmentAngle := 360.0 / float64(len(g.Segments))
	baseAngle := float64(g.Result.ID-1) * segmentAngle

	offsetMax := big.NewInt(int64(segmentAngle * 100))
	offsetN, _ := rand.Int(rand.Reader, offsetMax)
	offset := float64(offsetN.Int64()) / 100.0

	rotations := 5
	g.SpinAngle = float64(rotations*360) + baseAngle + offset

	return g.Result
}

// ExpectedPoints is the mean prize of one spin.
func (g *WheelGame) ExpectedPoints() float64 {
	expected := 0.0
	for _, seg := range g.Segments {
		expected += seg.Probability * float64(seg.Points)
	}
	return expected
}
