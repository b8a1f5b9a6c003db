package sim

import (
	"github.com/tumblecoin/coinflip/body"
	"github.com/tumblecoin/coinflip/vector"
)

// Face is the classified settled orientation of a coin.
type Face int

const (
	Heads Face = iota
	Tails
	Edge
)

func (f Face) String() string {
	switch f {
	case Heads:
		return "HEADS"
	case Tails:
		return "TAILS"
	default:
		return "EDGE"
	}
}

// DefaultEdgeThreshold is the default alignment threshold separating
// HEADS/TAILS from EDGE.
const DefaultEdgeThreshold = 0.1

// Evaluate classifies rb's settled orientation: align = (q * Up).Y,
// compared against +/- threshold.
func Evaluate(rb *body.RigidBody, threshold float64) Face {
	normalWorld := rb.Orientation.RotateVector(vector.Up)
	align := normalWorld.Y

	switch {
	case align > threshold:
		return Heads
	case align < -threshold:
		return Tails
	default:
		return Edge
	}
}
