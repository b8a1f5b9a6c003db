package sim

import (
	"math"
	"testing"

	"github.com/tumblecoin/coinflip/body"
	"github.com/tumblecoin/coinflip/vector"
)

func tiltedDisc(t *testing.T, angle float64) *body.RigidBody {
	t.Helper()
	rb, err := body.New(body.State{
		Position:    vector.Vec3{Y: 1},
		Orientation: vector.FromAxisAngle(vector.Right, angle),
	}, 0.00567, 0.01213, 0.00175)
	if err != nil {
		t.Fatalf("body.New() error = %v", err)
	}
	return rb
}

// Q11: HEADS iff cos(theta) > threshold, TAILS iff cos(theta) < -threshold,
// EDGE otherwise.
func TestEvaluate_FaceBoundary(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Face
	}{
		{"face up, no tilt", 0, Heads},
		{"face down, flipped", math.Pi, Tails},
		{"near-upright small tilt still heads", 0.2, Heads},
		{"near-inverted small tilt still tails", math.Pi - 0.2, Tails},
		{"standing on edge", math.Pi / 2, Edge},
		{"comfortably past the edge band", math.Acos(DefaultEdgeThreshold + 0.05), Heads},
		{"just inside the edge band", math.Acos(DefaultEdgeThreshold - 0.05), Edge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := tiltedDisc(t, tt.angle)
			got := Evaluate(rb, DefaultEdgeThreshold)
			if got != tt.want {
				t.Errorf("Evaluate(angle=%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestEvaluate_ExactThresholdIsEdge(t *testing.T) {
	// align == threshold exactly falls through to EDGE: the comparisons
	// are strict. A tilt of acos(threshold) does not land exactly on the
	// threshold after rotation round-off, so the threshold is taken from
	// the body's own computed alignment.
	rb := tiltedDisc(t, math.Acos(DefaultEdgeThreshold))
	align := rb.Orientation.RotateVector(vector.Up).Y
	if got := Evaluate(rb, align); got != Edge {
		t.Errorf("Evaluate() at exact threshold = %v, want EDGE", got)
	}
}
